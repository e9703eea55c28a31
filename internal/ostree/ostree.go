package ostree

import (
	"regexp"
)

var ostreeRefRE = regexp.MustCompile(`^(?:[\w\d][-._\w\d]*\/)*[\w\d][-._\w\d]*$`)

// Mode is the object storage format of an ostree repository.
type Mode string

const (
	ModeBare         Mode = "bare"
	ModeBareUser     Mode = "bare-user"
	ModeBareUserOnly Mode = "bare-user-only"
	ModeArchive      Mode = "archive"
)

// Valid reports whether m is a repository mode understood by ostree init.
func (m Mode) Valid() bool {
	switch m {
	case ModeBare, ModeBareUser, ModeBareUserOnly, ModeArchive:
		return true
	}
	return false
}

// VerifyRef checks that ref is a valid ostree ref name.
func VerifyRef(ref string) bool {
	if len(ref) > 0 && ostreeRefRE.MatchString(ref) {
		return true
	}
	return false
}
