package roster

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`(?i)^[0-9]{3}[A-Z]$`)

// IdentifierStatus classifies an identifier value.
type IdentifierStatus int

const (
	IdentifierMissing IdentifierStatus = iota
	IdentifierInvalid
	IdentifierValid
)

func (s IdentifierStatus) String() string {
	switch s {
	case IdentifierMissing:
		return "missing"
	case IdentifierInvalid:
		return "invalid"
	default:
		return "valid"
	}
}

// InvalidIdentifierMessage is shown for a value that does not match the pattern.
const InvalidIdentifierMessage = "Identifier must be 3 digits followed by a letter (e.g. 567A)"

// ValidateIdentifier checks the last-three-digits-plus-letter shape. Surrounding
// whitespace is ignored.
func ValidateIdentifier(identifier string) (IdentifierStatus, string) {
	v := strings.TrimSpace(identifier)
	switch {
	case v == "":
		return IdentifierMissing, ""
	case !identifierPattern.MatchString(v):
		return IdentifierInvalid, InvalidIdentifierMessage
	default:
		return IdentifierValid, ""
	}
}
