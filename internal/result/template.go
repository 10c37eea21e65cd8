// Package result implements the E component: the three mutually exclusive
// result materialization branches (template, stateful, derive) selected by
// a ResultType's class bit.
package result

import (
	"savedhi/internal/model"
	"savedhi/internal/version"
)

// Template materializes a template-class result type against siteKey.
func Template(siteKey *model.SiteKey, resultType model.ResultType) (string, error) {
	templates, ok := templateInventories[resultType]
	if !ok {
		return "", model.NewError(model.KindUnsupportedResultType, "no template inventory for result type")
	}

	disp := version.For(siteKey.Algorithm)
	keyBytes := siteKey.Bytes[:]

	templateIndex := int(disp.TemplateSeedByte(keyBytes, 0)) % len(templates)
	template := templates[templateIndex]

	if len(template) > len(keyBytes)-1 {
		return "", model.NewError(model.KindPrimitiveFailure, "template longer than site key allows")
	}

	out := make([]byte, len(template))
	for c := 0; c < len(template); c++ {
		class := classCharacters[template[c]]
		if class == "" {
			return "", model.NewError(model.KindInternal, "unknown template class character")
		}
		seedByte := int(disp.TemplateSeedByte(keyBytes, c+1))
		out[c] = class[seedByte%len(class)]
	}
	return string(out), nil
}
