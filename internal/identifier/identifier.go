// Package identifier classifies login and reset identifiers as either an
// email address or a phone number.
package identifier

import "regexp"

// Kind tells which account field an identifier is matched against.
type Kind int

const (
	KindPhone Kind = iota
	KindEmail
)

func (k Kind) String() string {
	if k == KindEmail {
		return "email"
	}
	return "phone"
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Identifier is a raw identifier together with its classification.
type Identifier struct {
	Kind  Kind
	Value string
}

// Parse classifies raw. Anything that does not look like local@domain.tld is
// treated as a phone number; the value itself is kept untouched.
func Parse(raw string) Identifier {
	if IsEmail(raw) {
		return Identifier{Kind: KindEmail, Value: raw}
	}
	return Identifier{Kind: KindPhone, Value: raw}
}

// IsEmail reports whether s matches the email pattern.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
