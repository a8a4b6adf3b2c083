package chats

import "regexp"

const (
	ChatBlockReason    = "Chat blocked: sharing phone numbers is not allowed"
	MessageBlockReason = "Message contains a phone number"
)

var phonePatterns = []*regexp.Regexp{
	// 5551234567
	regexp.MustCompile(`\b\d{10}\b`),
	// 555-123-4567, 555.123.4567, 555 123 4567
	regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	// +1 (555) 123 4567, +44-20-7946-0958
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
	// 0555 123 456
	regexp.MustCompile(`\b\d{4}[-.\s]?\d{3}[-.\s]?\d{3}\b`),
}

// ContainsPhoneNumber reports whether text matches any of the phone patterns.
func ContainsPhoneNumber(text string) bool {
	for _, p := range phonePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
