package validator

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	opaqueIDRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateOpaqueID accepts identifiers issued by the directory service.
// They end up in URL paths, so only a conservative alphabet is allowed.
func ValidateOpaqueID(id string) bool {
	return opaqueIDRegex.MatchString(id)
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}
