package utils

import "strings"

// ExtractNameFromEmail derives a display name from the local part of an
// email address, used when a user has not set one.
func ExtractNameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return strings.TrimSpace(local)
}
