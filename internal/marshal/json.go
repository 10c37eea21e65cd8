package marshal

import (
	"time"

	"go.uber.org/zap"

	"savedhi/internal/identicon"
	"savedhi/internal/model"
	"savedhi/internal/tree"
)

const (
	jsonWriteFormat = 2
	rfc3339         = time.RFC3339
)

func writeJSON(user *MarshalledUser, opts WriteOptions) ([]byte, error) {
	root := tree.New()
	now := opts.now()

	root.Get("export", "format").SetNum(jsonWriteFormat)
	root.Get("export", "date").SetStr(now.UTC().Format(rfc3339))
	root.Get("export", "redacted").SetBool(opts.Redacted)

	root.Get("user", "avatar").SetNum(float64(user.Avatar))
	root.Get("user", "full_name").SetStr(user.UserName)
	root.Get("user", "identicon").SetStr(identicon.Encode(user.Identicon))
	root.Get("user", "algorithm").SetNum(float64(user.Algorithm))
	root.Get("user", "key_id").SetStr(user.KeyID)
	root.Get("user", "default_type").SetNum(float64(user.DefaultType))
	root.Get("user", "login_type").SetNum(float64(user.LoginType))
	root.Get("user", "last_used").SetStr(user.LastUsed.UTC().Format(rfc3339))

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

	if err := writeUserLoginName(root, user, userKey, opts.Redacted, now); err != nil {
		return nil, err
	}

	sitesNode := root.Get("sites")
	for _, site := range user.Sites {
		siteUserKey := userKey
		if !opts.Redacted && site.Algorithm != user.Algorithm {
			siteUserKey, err = opts.UserKeyProvider(site.Algorithm, user.UserName)
			if err != nil {
				return nil, err
			}
		}
		if err := writeSite(sitesNode, site, user, siteUserKey, opts.Redacted, now); err != nil {
			return nil, err
		}
	}

	Logger.Info("wrote marshalled user", zap.String("user", user.UserName), zap.Int("sites", len(user.Sites)), zap.Bool("redacted", opts.Redacted))
	return tree.MarshalJSON(root)
}

func writeUserLoginName(root *tree.Node, user *MarshalledUser, userKey *model.UserKey, redacted bool, now time.Time) error {
	if redacted {
		if user.LoginType.ExportContent() {
			root.Get("user", "login_name").SetStr(user.LoginState)
		}
		return nil
	}
	loginName, err := exportValue(userKey, user.UserName, model.CounterInitial, fieldLogin, user.LoginType, user.LoginState, now)
	if err != nil {
		return err
	}
	root.Get("user", "login_name").SetStr(loginName)
	return nil
}

func writeSite(sitesNode *tree.Node, site MarshalledSite, user *MarshalledUser, userKey *model.UserKey, redacted bool, now time.Time) error {
	siteNode := sitesNode.Get(site.SiteName)
	siteNode.Get("counter").SetNum(float64(site.Counter))
	siteNode.Get("algorithm").SetNum(float64(site.Algorithm))
	siteNode.Get("type").SetNum(float64(site.ResultType))
	siteNode.Get("uses").SetNum(float64(site.Uses))
	siteNode.Get("last_used").SetStr(site.LastUsed.UTC().Format(rfc3339))
	if site.URL != "" {
		siteNode.Get("_ext_savedhi", "url").SetStr(site.URL)
	}

	loginType := site.EffectiveLoginType(user.LoginType)
	if site.LoginType != nil {
		siteNode.Get("login_type").SetNum(float64(*site.LoginType))
	}

	if redacted {
		if site.ResultType.ExportContent() {
			siteNode.Get("password").SetStr(site.ResultState)
		}
		if site.LoginState != "" && loginType.ExportContent() {
			siteNode.Get("login_name").SetStr(site.LoginState)
		}
		for _, q := range site.Questions {
			qNode := siteNode.Get("questions", q.Keyword)
			qNode.Get("type").SetNum(float64(q.Type))
			if q.Type.ExportContent() {
				qNode.Get("answer").SetStr(q.State)
			}
		}
		return nil
	}

	password, err := exportValue(userKey, site.SiteName, site.Counter, fieldPassword, site.ResultType, site.ResultState, now)
	if err != nil {
		return err
	}
	siteNode.Get("password").SetStr(password)

	if site.LoginState != "" {
		loginName, err := exportValue(userKey, site.SiteName, site.Counter, fieldLogin, loginType, site.LoginState, now)
		if err != nil {
			return err
		}
		siteNode.Get("login_name").SetStr(loginName)
	}

	for _, q := range site.Questions {
		answer, err := exportValue(userKey, site.SiteName, site.Counter, fieldAnswer, q.Type, q.State, now)
		if err != nil {
			return err
		}
		qNode := siteNode.Get("questions", q.Keyword)
		qNode.Get("type").SetNum(float64(q.Type))
		qNode.Get("answer").SetStr(answer)
	}
	return nil
}

func readJSON(data []byte, opts ReadOptions) *MarshalledFile {
	root, err := tree.ParseJSON(data)
	if err != nil {
		return NewErrorFile(err.(*model.Error))
	}

	formatNode, ok := root.Find("export", "format")
	if !ok {
		return NewErrorFile(model.NewError(model.KindFormatMissing, "missing export.format"))
	}
	rawFormat := int(formatNode.GetNum())
	if rawFormat != 1 && rawFormat != 2 {
		return NewErrorFile(model.NewError(model.KindFormatStructure, "unsupported JSON export format version"))
	}

	redacted := false
	if n, ok := root.Find("export", "redacted"); ok {
		redacted = n.GetBool()
	}

	algoNode, ok := root.Find("user", "algorithm")
	if !ok {
		return NewErrorFile(model.NewError(model.KindFormatMissing, "missing user.algorithm"))
	}
	algo := model.AlgorithmVersion(uint8(algoNode.GetNum()))
	if !algo.Valid() {
		return NewErrorFile(model.NewError(model.KindFormatIllegal, "user.algorithm out of range"))
	}

	userName := strNode(root, "user", "full_name")
	keyID := strNode(root, "user", "key_id")
	exportDate, _ := time.Parse(rfc3339, strNode(root, "export", "date"))
	lastUsed, _ := time.Parse(rfc3339, strNode(root, "user", "last_used"))

	info := &MarshalledInfo{
		Format:     FormatJSON,
		ExportDate: exportDate,
		Redacted:   redacted,
		Algorithm:  algo,
		Avatar:     uint32(numNode(root, "user", "avatar")),
		UserName:   userName,
		Identicon:  identicon.Decode(strNode(root, "user", "identicon")),
		KeyID:      keyID,
		LastUsed:   lastUsed,
	}

	var userKey *model.UserKey
	if opts.UserKeyProvider != nil {
		key, err := verifyFingerprint(opts.UserKeyProvider, algo, userName, keyID)
		if err != nil {
			return &MarshalledFile{Info: info, Err: err.(*model.Error)}
		}
		userKey = key
	}

	user := &MarshalledUser{
		UserName:    userName,
		Algorithm:   algo,
		Avatar:      info.Avatar,
		Identicon:   info.Identicon,
		KeyID:       keyID,
		DefaultType: model.ResultType(numNode(root, "user", "default_type")),
		LoginType:   model.ResultType(numNode(root, "user", "login_type")),
		LastUsed:    lastUsed,
		Redacted:    redacted,
	}

	if loginName := strNode(root, "user", "login_name"); loginName != "" {
		state, err := resolveReadValue(userKey, redacted, user.LoginType, loginName)
		if err != nil {
			return &MarshalledFile{Info: info, Err: err.(*model.Error)}
		}
		user.LoginState = state
	}

	sitesNode, ok := root.Find("sites")
	if ok {
		for _, siteNode := range sitesNode.Children() {
			site, err := readSite(siteNode, userKey, redacted, rawFormat)
			if err != nil {
				return &MarshalledFile{Info: info, Err: err.(*model.Error)}
			}
			user.Sites = append(user.Sites, site)
		}
	}

	Logger.Info("read marshalled user", zap.String("user", userName), zap.Int("sites", len(user.Sites)))
	return &MarshalledFile{Info: info, Data: user}
}

func readSite(siteNode *tree.Node, userKey *model.UserKey, redacted bool, rawFormat int) (MarshalledSite, error) {
	algo := model.AlgorithmVersion(uint8(numNodeIn(siteNode, "algorithm")))
	if !algo.Valid() {
		return MarshalledSite{}, model.NewError(model.KindFormatIllegal, "site algorithm out of range")
	}
	resultType := model.ResultType(numNodeIn(siteNode, "type"))
	// counter 0 is the TOTP sentinel, a legal, round-trippable value
	// distinct from "field absent" -- only default to CounterInitial when
	// the counter field itself is missing from the record.
	counter := model.CounterInitial
	if counterNode, ok := siteNode.Find("counter"); ok {
		counter = model.Counter(uint32(counterNode.GetNum()))
	}

	site := MarshalledSite{
		SiteName:   siteNode.Key(),
		Algorithm:  algo,
		Counter:    counter,
		ResultType: resultType,
		Uses:       uint32(numNodeIn(siteNode, "uses")),
	}
	if lastUsed, err := time.Parse(rfc3339, strNodeIn(siteNode, "last_used")); err == nil {
		site.LastUsed = lastUsed
	}
	if url := strNodeIn2(siteNode, "_ext_savedhi", "url"); url != "" {
		site.URL = url
	}

	siteKeyForLogin := effectiveUserKey(userKey, algo)

	if loginTypeNode, ok := siteNode.Find("login_type"); ok {
		lt := model.ResultType(loginTypeNode.GetNum())
		// format=1 fix-up: a stored TemplateName login type is cleared
		// so the site inherits the user's login type (spec §4.8).
		if rawFormat == 1 && lt == model.TemplateName {
			site.LoginType = nil
		} else {
			site.LoginType = &lt
		}
	}

	if password := strNodeIn(siteNode, "password"); password != "" {
		state, err := resolveReadValue(siteKeyForLogin, redacted, resultType, password)
		if err != nil {
			return MarshalledSite{}, err
		}
		site.ResultState = state
	}

	loginType := resultType
	if site.LoginType != nil {
		loginType = *site.LoginType
	}
	if loginName := strNodeIn(siteNode, "login_name"); loginName != "" {
		state, err := resolveReadValue(siteKeyForLogin, redacted, loginType, loginName)
		if err != nil {
			return MarshalledSite{}, err
		}
		site.LoginState = state
	}

	if questionsNode, ok := siteNode.Find("questions"); ok {
		for _, qNode := range questionsNode.Children() {
			qType := model.ResultType(numNodeIn(qNode, "type"))
			answer := strNodeIn(qNode, "answer")
			state, err := resolveReadValue(siteKeyForLogin, redacted, qType, answer)
			if err != nil {
				return MarshalledSite{}, err
			}
			site.Questions = append(site.Questions, MarshalledQuestion{
				Keyword: qNode.Key(),
				Type:    qType,
				State:   state,
			})
		}
	}

	return site, nil
}

// resolveReadValue implements read-step 3: if redacted, the value is
// stored as received (it is already opaque or omitted); otherwise the
// value read from the file is plaintext and is re-encrypted under userKey
// for uniform in-memory storage. When userKey is nil the value is also
// stored as received.
func resolveReadValue(userKey *model.UserKey, redacted bool, resultType model.ResultType, value string) (string, error) {
	if redacted {
		return value, nil
	}
	if userKey == nil {
		return value, nil
	}
	// Every state field, regardless of result class, is re-encrypted so
	// the in-memory representation is uniformly ciphertext (spec §4.8
	// step 3); Template/Derive fields are simply recomputed on the next
	// write rather than decrypted on read.
	return reencryptValue(userKey, value)
}

func strNode(root *tree.Node, path ...string) string {
	n, ok := root.Find(path...)
	if !ok {
		return ""
	}
	return n.GetStr()
}

func numNode(root *tree.Node, path ...string) float64 {
	n, ok := root.Find(path...)
	if !ok {
		return 0
	}
	return n.GetNum()
}

func strNodeIn(n *tree.Node, key string) string {
	c, ok := n.Find(key)
	if !ok {
		return ""
	}
	return c.GetStr()
}

func strNodeIn2(n *tree.Node, key1, key2 string) string {
	c, ok := n.Find(key1, key2)
	if !ok {
		return ""
	}
	return c.GetStr()
}

func numNodeIn(n *tree.Node, key string) float64 {
	c, ok := n.Find(key)
	if !ok {
		return 0
	}
	return c.GetNum()
}
