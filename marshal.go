package savedhi

import (
	"savedhi/internal/marshal"
)

// Format is the on-disk shape of a marshalled file.
type Format = marshal.Format

const (
	FormatNone = marshal.FormatNone
	FormatFlat = marshal.FormatFlat
	FormatJSON = marshal.FormatJSON
)

// DetectFormat sniffs the first byte of data to determine its Format.
func DetectFormat(data []byte) Format {
	return marshal.DetectFormat(data)
}

// KeyProvider derives a user key for (algo, userName) on demand, typically
// by prompting the caller's user for their secret.
type KeyProvider = marshal.KeyProvider

// MarshalledQuestion is a recovery question and its encrypted answer.
type MarshalledQuestion = marshal.MarshalledQuestion

// MarshalledSite is one site's full descriptor and persisted state.
type MarshalledSite = marshal.MarshalledSite

// MarshalledUser is a full user record: identity plus every site.
type MarshalledUser = marshal.MarshalledUser

// MarshalledInfo is the metadata block parseable without the user secret.
type MarshalledInfo = marshal.MarshalledInfo

// MarshalledFile carries a marshal read's result: either populated Data, or
// an Err describing why parsing/authentication failed.
type MarshalledFile = marshal.MarshalledFile

// WriteOptions configures MarshalWrite.
type WriteOptions = marshal.WriteOptions

// ReadOptions configures MarshalRead.
type ReadOptions = marshal.ReadOptions

// ProxyProvider caches the last-derived user key across a marshal
// operation over many sites, so only an algorithm change re-pays scrypt.
type ProxyProvider = marshal.ProxyProvider

// NewProxyProvider wraps underlying, caching by (userName, algorithm).
func NewProxyProvider(underlying KeyProvider, userName string) *ProxyProvider {
	return marshal.NewProxyProvider(underlying, userName)
}

// MarshalWrite serializes user in opts.Format.
func MarshalWrite(user *MarshalledUser, opts WriteOptions) ([]byte, error) {
	return marshal.Write(user, opts)
}

// MarshalRead parses data, sniffing its format, into a MarshalledFile.
func MarshalRead(data []byte, opts ReadOptions) *MarshalledFile {
	return marshal.Read(data, opts)
}
