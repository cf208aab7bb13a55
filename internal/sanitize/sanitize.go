// Package sanitize provides client-local text checks used before any network
// round-trip: profanity filtering, dangerous-markup detection, and small
// display helpers.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// badWords is the known bad-word list, matched case-insensitively on word
// boundaries. English entries plus the Filipino slang the community reports
// most often.
var badWords = []string{
	"fuck",
	"shit",
	"bitch",
	"asshole",
	"bastard",
	"dick",
	"tangina",
	"putangina",
	"puta",
	"gago",
	"gaga",
	"bobo",
	"tanga",
	"ulol",
	"leche",
	"punyeta",
}

var profanityRe = compileProfanity(badWords)

func compileProfanity(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(fmt.Sprintf(`(?i)\b(%s)\b`, strings.Join(quoted, "|")))
}

// dangerousPatterns flag markup that must never reach the backend: script
// tags, javascript: URLs, and inline event-handler attributes.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)<\s*iframe`),
	regexp.MustCompile(`(?i)data\s*:\s*text/html`),
}

// ContainsProfanity reports whether text contains a known bad word.
func ContainsProfanity(text string) bool {
	return profanityRe.MatchString(text)
}

// ContainsDangerousPattern reports whether text contains script tags,
// javascript: URLs, or inline event-handler attributes.
func ContainsDangerousPattern(text string) bool {
	for _, re := range dangerousPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Clean strips dangerous patterns from text and collapses runs of whitespace
// into single spaces.
func Clean(text string) string {
	for _, re := range dangerousPatterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

// Initials derives up-to-two uppercase initials for avatar rendering.
// "Juan Dela Cruz" yields "JD"; a blank name yields the placeholder "U".
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "U"
	}

	var b strings.Builder
	for _, f := range fields[:min(2, len(fields))] {
		r := []rune(f)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
