// Package marshal implements the H component: reading and writing a user +
// sites + questions record to/from two on-disk shapes (flat text and
// JSON), in redacted or cleartext form.
package marshal

import (
	"time"

	"savedhi/internal/model"
)

// Format is the on-disk shape of a marshalled file.
type Format int

const (
	FormatNone Format = iota
	FormatFlat
	FormatJSON
)

// DetectFormat sniffs the first byte of data per spec §4.8.
func DetectFormat(data []byte) Format {
	if len(data) == 0 {
		return FormatNone
	}
	switch data[0] {
	case '#':
		return FormatFlat
	case '{':
		return FormatJSON
	default:
		return FormatNone
	}
}

// MarshalledQuestion is a recovery question and its encrypted answer.
type MarshalledQuestion struct {
	Keyword string
	Type    model.ResultType
	State   string
}

// MarshalledSite is one site's full descriptor and persisted state.
type MarshalledSite struct {
	SiteName    string
	Algorithm   model.AlgorithmVersion
	Counter     model.Counter
	ResultType  model.ResultType
	ResultState string
	// LoginType is nil when the site has no override and inherits the
	// user's LoginType.
	LoginType  *model.ResultType
	LoginState string
	URL        string
	Uses       uint32
	LastUsed   time.Time
	Questions  []MarshalledQuestion
}

// EffectiveLoginType returns s.LoginType if set, else userDefault.
func (s MarshalledSite) EffectiveLoginType(userDefault model.ResultType) model.ResultType {
	if s.LoginType != nil {
		return *s.LoginType
	}
	return userDefault
}

// MarshalledUser is a full user record: identity plus every site.
type MarshalledUser struct {
	UserName    string
	Algorithm   model.AlgorithmVersion
	Avatar      uint32
	Identicon   model.Identicon
	KeyID       string
	DefaultType model.ResultType
	LoginType   model.ResultType
	LoginState  string
	LastUsed    time.Time
	Redacted    bool
	Sites       []MarshalledSite
}

// MarshalledInfo is the metadata block parseable without the user secret.
type MarshalledInfo struct {
	Format     Format
	ExportDate time.Time
	Redacted   bool
	Algorithm  model.AlgorithmVersion
	Avatar     uint32
	UserName   string
	Identicon  model.Identicon
	KeyID      string
	LastUsed   time.Time
}

// MarshalledFile is the single channel carrying both parse state and
// structured error outcomes (spec §3).
type MarshalledFile struct {
	Info *MarshalledInfo
	Data *MarshalledUser
	Err  *model.Error
}

// NewErrorFile builds a MarshalledFile carrying only an error.
func NewErrorFile(err *model.Error) *MarshalledFile {
	return &MarshalledFile{Err: err}
}
