package tree

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"savedhi/internal/model"
)

// MarshalJSON serializes n in child insertion order. A KindObject child
// whose value is null or an empty object is omitted entirely (spec §4.7).
func MarshalJSON(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *Node) error {
	switch n.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if n.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNum:
		if n.numDisplay != "" {
			buf.WriteString(n.numDisplay)
		} else {
			buf.WriteString(strconv.FormatFloat(n.numVal, 'g', -1, 64))
		}
	case KindStr:
		encoded, err := json.Marshal(n.strVal)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindArray:
		buf.WriteByte('[')
		for i, c := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		first := true
		for _, c := range n.children {
			if isOmittable(c) {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			keyEncoded, err := json.Marshal(c.objKey)
			if err != nil {
				return err
			}
			buf.Write(keyEncoded)
			buf.WriteByte(':')
			if err := writeNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func isOmittable(n *Node) bool {
	if n.kind == KindNull {
		return true
	}
	return n.kind == KindObject && len(n.children) == 0
}

// ParseJSON parses data into a tree, preserving object key insertion order
// and each number's original source text as its display string.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := parseValue(dec)
	if err != nil {
		return nil, model.WrapError(model.KindFormatStructure, "malformed JSON", err)
	}
	return root, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, model.NewError(model.KindFormatStructure, "unexpected JSON delimiter")
	case nil:
		return &Node{kind: KindNull}, nil
	case bool:
		return &Node{kind: KindBool, boolVal: v}, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return &Node{kind: KindNum, numVal: f, numDisplay: v.String()}, nil
	case string:
		return &Node{kind: KindStr, strVal: v}, nil
	default:
		return nil, model.NewError(model.KindFormatStructure, "unrecognized JSON token")
	}
}

func parseObject(dec *json.Decoder) (*Node, error) {
	n := &Node{kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, model.NewError(model.KindFormatStructure, "object key is not a string")
		}
		valueNode, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		valueNode.objKey = key
		n.children = append(n.children, valueNode)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF { // consume '}'
		return nil, err
	}
	return n, nil
}

func parseArray(dec *json.Decoder) (*Node, error) {
	n := &Node{kind: KindArray}
	for dec.More() {
		valueNode, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, valueNode)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF { // consume ']'
		return nil, err
	}
	return n, nil
}
