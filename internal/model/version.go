// Package model holds the shared value types of the credential derivation
// engine: algorithm versions, key purposes, result types, counters, and the
// owned key material (UserKey/SiteKey) that every other internal package
// derives or consumes.
package model

import "fmt"

// AlgorithmVersion selects byte-ordering and string-length semantics for
// every derivation step. Current is always the highest defined version.
type AlgorithmVersion uint8

const (
	V0 AlgorithmVersion = iota
	V1
	V2
	V3

	Current = V3
)

func (a AlgorithmVersion) Valid() bool {
	return a >= V0 && a <= V3
}

func (a AlgorithmVersion) String() string {
	return fmt.Sprintf("V%d", uint8(a))
}

// KeyPurpose selects the scope string mixed into a site-key salt.
type KeyPurpose uint8

const (
	Authentication KeyPurpose = iota
	Identification
	Recovery
)

// Scope returns the fixed salt prefix for this purpose.
func (p KeyPurpose) Scope() string {
	switch p {
	case Authentication:
		return "com.lyndir.masterpassword"
	case Identification:
		return "com.lyndir.masterpassword.login"
	case Recovery:
		return "com.lyndir.masterpassword.answer"
	default:
		return ""
	}
}

// Counter is the site-key generation counter. 0 is the TOTP sentinel.
type Counter uint32

const (
	CounterTOTP    Counter = 0
	CounterInitial Counter = 1
)
