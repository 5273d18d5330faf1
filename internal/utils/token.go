package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateVerificationToken returns an opaque token for email verification
// links. Dashes are stripped so the token survives naive URL handling.
func GenerateVerificationToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
