package marshal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"savedhi/internal/identicon"
	"savedhi/internal/model"
)

// flatDateLayout is the plain calendar-date form a site record's lastUsed
// column is written/parsed in; the header's own Date uses RFC3339.
const flatDateLayout = "2006-01-02"

const flatWriteFormat = 1

// flatLoginEmptySentinel marks an absent login state in a format-1 site
// record, whose column is otherwise mandatory.
const flatLoginEmptySentinel = "-"

func writeFlat(user *MarshalledUser, opts WriteOptions) ([]byte, error) {
	now := opts.now()

	var userKey *model.UserKey
	var err error
	if !opts.Redacted {
		if opts.UserKeyProvider == nil {
			return nil, model.NewError(model.KindMissingInput, "cleartext write requires a user key provider")
		}
		userKey, err = opts.UserKeyProvider(user.Algorithm, user.UserName)
		if err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	b.WriteString("# savedhi export\n")
	b.WriteString("##\n")
	fmt.Fprintf(&b, "# Format: %d\n", flatWriteFormat)
	fmt.Fprintf(&b, "# Date: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "# Full Name: %s\n", user.UserName)
	fmt.Fprintf(&b, "# Avatar: %d\n", user.Avatar)
	fmt.Fprintf(&b, "# Identicon: %s\n", identicon.Encode(user.Identicon))
	fmt.Fprintf(&b, "# Key ID: %s\n", user.KeyID)
	fmt.Fprintf(&b, "# Algorithm: %d\n", uint8(user.Algorithm))
	fmt.Fprintf(&b, "# Default Type: %d\n", uint32(user.DefaultType))
	if opts.Redacted {
		b.WriteString("# Passwords: REDACTED\n")
	} else {
		b.WriteString("# Passwords: VISIBLE\n")
	}
	b.WriteString("##\n")

	for _, site := range user.Sites {
		siteUserKey := userKey
		if !opts.Redacted && site.Algorithm != user.Algorithm {
			siteUserKey, err = opts.UserKeyProvider(site.Algorithm, user.UserName)
			if err != nil {
				return nil, err
			}
		}
		line, err := writeFlatSite(site, user, siteUserKey, opts.Redacted, now)
		if err != nil {
			return nil, err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	Logger.Info("wrote marshalled user",
		zap.String("user", user.UserName),
		zap.Int("sites", len(user.Sites)),
		zap.Bool("redacted", opts.Redacted),
	)
	return []byte(b.String()), nil
}

// writeFlatSite renders one format-1 record (questions have no flat-format
// representation and are dropped on this path — spec §4.8's flat record
// shapes carry no questions column).
func writeFlatSite(site MarshalledSite, user *MarshalledUser, userKey *model.UserKey, redacted bool, now time.Time) (string, error) {
	var password string
	var err error
	if redacted {
		if site.ResultType.ExportContent() {
			password = site.ResultState
		}
	} else {
		password, err = exportValue(userKey, site.SiteName, site.Counter, fieldPassword, site.ResultType, site.ResultState, now)
		if err != nil {
			return "", err
		}
	}

	loginType := site.EffectiveLoginType(user.LoginType)
	loginState := flatLoginEmptySentinel
	if site.LoginState != "" {
		if redacted {
			if loginType.ExportContent() {
				loginState = site.LoginState
			}
		} else {
			loginState, err = exportValue(userKey, site.SiteName, site.Counter, fieldLogin, loginType, site.LoginState, now)
			if err != nil {
				return "", err
			}
		}
	}

	lastUsed := now
	if !site.LastUsed.IsZero() {
		lastUsed = site.LastUsed
	}

	return fmt.Sprintf("%s %d %d:%d:%d %s\t%s\t%s",
		lastUsed.UTC().Format(flatDateLayout),
		site.Uses,
		uint32(site.ResultType), uint8(site.Algorithm), uint32(site.Counter),
		loginState,
		site.SiteName,
		password,
	), nil
}

func readFlat(data []byte, opts ReadOptions) *MarshalledFile {
	hashCount := 0
	var headerLines, siteLines []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")
		if line == "##" {
			hashCount++
			continue
		}
		if line == "" {
			continue
		}
		switch hashCount {
		case 0:
			// preamble comment, ignored
		case 1:
			headerLines = append(headerLines, line)
		default:
			siteLines = append(siteLines, line)
		}
	}
	if hashCount < 2 {
		return NewErrorFile(model.NewError(model.KindFormatStructure, "flat file missing header delimiters"))
	}

	header := map[string]string{}
	for _, line := range headerLines {
		line = strings.TrimPrefix(line, "# ")
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		header[key] = value
	}

	rawFormat := 0
	if v, ok := header["Format"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return NewErrorFile(model.NewError(model.KindFormatStructure, "unparseable Format header"))
		}
		rawFormat = n
	}
	if rawFormat != 0 && rawFormat != 1 {
		return NewErrorFile(model.NewError(model.KindFormatStructure, "unsupported flat format version"))
	}

	userName := header["Full Name"]
	if userName == "" {
		userName = header["User Name"]
	}
	if userName == "" {
		return NewErrorFile(model.NewError(model.KindFormatMissing, "missing Full Name / User Name header"))
	}

	algoVal, err := strconv.Atoi(header["Algorithm"])
	if err != nil {
		return NewErrorFile(model.NewError(model.KindFormatMissing, "missing or unparseable Algorithm header"))
	}
	algo := model.AlgorithmVersion(uint8(algoVal))
	if !algo.Valid() {
		return NewErrorFile(model.NewError(model.KindFormatIllegal, "Algorithm header out of range"))
	}

	defaultTypeVal, err := strconv.Atoi(header["Default Type"])
	if err != nil {
		return NewErrorFile(model.NewError(model.KindFormatMissing, "missing or unparseable Default Type header"))
	}
	avatarVal, _ := strconv.Atoi(header["Avatar"])
	exportDate, _ := time.Parse(time.RFC3339, header["Date"])
	redacted := header["Passwords"] != "VISIBLE"
	keyID := header["Key ID"]

	info := &MarshalledInfo{
		Format:     FormatFlat,
		ExportDate: exportDate,
		Redacted:   redacted,
		Algorithm:  algo,
		Avatar:     uint32(avatarVal),
		UserName:   userName,
		Identicon:  identicon.Decode(header["Identicon"]),
		KeyID:      keyID,
	}

	var userKey *model.UserKey
	if opts.UserKeyProvider != nil {
		key, verr := verifyFingerprint(opts.UserKeyProvider, algo, userName, keyID)
		if verr != nil {
			return &MarshalledFile{Info: info, Err: verr.(*model.Error)}
		}
		userKey = key
	}

	user := &MarshalledUser{
		UserName:    userName,
		Algorithm:   algo,
		Avatar:      info.Avatar,
		Identicon:   info.Identicon,
		KeyID:       keyID,
		DefaultType: model.ResultType(defaultTypeVal),
		LoginType:   model.TemplateName,
		Redacted:    redacted,
	}

	for _, line := range siteLines {
		site, lastUsed, perr := parseFlatSite(line, rawFormat, userKey, redacted)
		if perr != nil {
			return &MarshalledFile{Info: info, Err: perr.(*model.Error)}
		}
		if lastUsed.After(user.LastUsed) {
			user.LastUsed = lastUsed
		}
		user.Sites = append(user.Sites, site)
	}
	info.LastUsed = user.LastUsed

	Logger.Info("read marshalled user", zap.String("user", userName), zap.Int("sites", len(user.Sites)))
	return &MarshalledFile{Info: info, Data: user}
}

func parseFlatSite(line string, rawFormat int, userKey *model.UserKey, redacted bool) (MarshalledSite, time.Time, error) {
	if rawFormat == 1 {
		return parseFlatSiteV1(line, userKey, redacted)
	}
	return parseFlatSiteV0(line, userKey, redacted)
}

func parseFlatSiteV0(line string, userKey *model.UserKey, redacted bool) (MarshalledSite, time.Time, error) {
	parts := strings.SplitN(line, "\t", 2)
	if len(parts) != 2 {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatStructure, "malformed format-0 site record")
	}
	head, resultState := parts[0], parts[1]

	fields := strings.Fields(head)
	if len(fields) < 4 {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatStructure, "malformed format-0 site record")
	}
	lastUsed, err := time.Parse(flatDateLayout, fields[0])
	if err != nil {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatIllegal, "unparseable lastUsed")
	}
	uses, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatIllegal, "unparseable uses")
	}
	typeAlgo := strings.Split(fields[2], ":")
	if len(typeAlgo) != 2 {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatStructure, "malformed type:algorithm field")
	}
	resultType, algo, err := parseTypeAlgo(typeAlgo[0], typeAlgo[1])
	if err != nil {
		return MarshalledSite{}, time.Time{}, err
	}
	siteName := strings.Join(fields[3:], " ")

	site := MarshalledSite{
		SiteName:   siteName,
		Algorithm:  algo,
		Counter:    model.CounterInitial,
		ResultType: resultType,
		Uses:       uint32(uses),
		LastUsed:   lastUsed,
	}
	if resultState != "" {
		state, rerr := resolveReadValue(effectiveUserKey(userKey, algo), redacted, resultType, resultState)
		if rerr != nil {
			return MarshalledSite{}, time.Time{}, rerr
		}
		site.ResultState = state
	}
	return site, lastUsed, nil
}

func parseFlatSiteV1(line string, userKey *model.UserKey, redacted bool) (MarshalledSite, time.Time, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatStructure, "malformed format-1 site record")
	}
	head, siteName, resultState := parts[0], parts[1], parts[2]

	fields := strings.Fields(head)
	if len(fields) < 4 {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatStructure, "malformed format-1 site record")
	}
	lastUsed, err := time.Parse(flatDateLayout, fields[0])
	if err != nil {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatIllegal, "unparseable lastUsed")
	}
	uses, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatIllegal, "unparseable uses")
	}
	typeAlgoCounter := strings.Split(fields[2], ":")
	if len(typeAlgoCounter) != 3 {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatStructure, "malformed type:algorithm:counter field")
	}
	resultType, algo, err := parseTypeAlgo(typeAlgoCounter[0], typeAlgoCounter[1])
	if err != nil {
		return MarshalledSite{}, time.Time{}, err
	}
	counterVal, err := strconv.ParseUint(typeAlgoCounter[2], 10, 32)
	if err != nil {
		return MarshalledSite{}, time.Time{}, model.NewError(model.KindFormatIllegal, "unparseable counter")
	}
	// format-1's counter column is always present (unlike format-0, which
	// has no counter at all), so an explicit 0 here is the TOTP sentinel,
	// not a stand-in for "absent" -- it must not be coerced to CounterInitial.
	counter := model.Counter(uint32(counterVal))
	loginState := strings.Join(fields[3:], " ")

	key := effectiveUserKey(userKey, algo)

	site := MarshalledSite{
		SiteName:   siteName,
		Algorithm:  algo,
		Counter:    counter,
		ResultType: resultType,
		Uses:       uint32(uses),
		LastUsed:   lastUsed,
	}
	if resultState != "" {
		state, rerr := resolveReadValue(key, redacted, resultType, resultState)
		if rerr != nil {
			return MarshalledSite{}, time.Time{}, rerr
		}
		site.ResultState = state
	}
	if loginState != "" && loginState != flatLoginEmptySentinel {
		state, rerr := resolveReadValue(key, redacted, model.TemplateName, loginState)
		if rerr != nil {
			return MarshalledSite{}, time.Time{}, rerr
		}
		site.LoginState = state
	}
	return site, lastUsed, nil
}

func parseTypeAlgo(typeStr, algoStr string) (model.ResultType, model.AlgorithmVersion, error) {
	typeVal, err := strconv.ParseUint(typeStr, 10, 32)
	if err != nil {
		return 0, 0, model.NewError(model.KindFormatIllegal, "unparseable result type")
	}
	algoVal, err := strconv.ParseUint(algoStr, 10, 8)
	if err != nil {
		return 0, 0, model.NewError(model.KindFormatIllegal, "unparseable algorithm")
	}
	algo := model.AlgorithmVersion(uint8(algoVal))
	if !algo.Valid() {
		return 0, 0, model.NewError(model.KindFormatIllegal, "algorithm out of range")
	}
	return model.ResultType(typeVal), algo, nil
}

// effectiveUserKey returns userKey when it was derived at algo, else nil —
// a site requesting a different algorithm than the caller's user key is
// carried through unre-encrypted rather than guessed at.
func effectiveUserKey(userKey *model.UserKey, algo model.AlgorithmVersion) *model.UserKey {
	if userKey == nil || userKey.Algorithm != algo {
		return nil
	}
	return userKey
}
