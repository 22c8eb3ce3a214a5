package achievement

import (
	"strings"

	"golang.org/x/text/language"
)

// Text is a display string in every supported language.
type Text struct {
	DE string
	EN string
}

var supportedTags = []language.Tag{
	language.German,
	language.English,
	language.Polish,
}

var tagMatcher = language.NewMatcher(supportedTags)

// DefaultLanguage is used when no supported language matches.
func DefaultLanguage() language.Tag {
	return language.German
}

// ParseLanguage parses a language tag, falling back to DefaultLanguage.
func ParseLanguage(s string) language.Tag {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage()
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage()
	}
	return tag
}

// In returns the text for the closest supported language. Polish has no
// catalog text yet and reads English.
func (t Text) In(tag language.Tag) string {
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	if supportedTags[idx] == language.German {
		return t.DE
	}
	return t.EN
}
