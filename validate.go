package lingopipe

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// ValidateText checks user text input against length limits.
func ValidateText(text string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = MaxTextLen
	}
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "text is empty"}
	}
	if len([]rune(text)) > maxLen {
		return &ValidationError{Field: "text", Message: "text exceeds maximum length"}
	}
	return nil
}

// ValidateLanguagePair checks source and target language codes.
// The target may not be AutoDetect, and a concrete source may not equal
// the target.
func ValidateLanguagePair(source, target string) error {
	if source != AutoDetect && !IsValidLanguage(source) {
		return &ValidationError{Field: "source", Message: "unsupported language: " + source}
	}
	if target == AutoDetect {
		return &ValidationError{Field: "target", Message: "target language cannot be auto-detect"}
	}
	if !IsValidLanguage(target) {
		return &ValidationError{Field: "target", Message: "unsupported language: " + target}
	}
	if source != AutoDetect && source == target {
		return &ValidationError{Field: "target", Message: "source and target languages are the same"}
	}
	return nil
}

// ValidateRequest checks a complete translation request.
func ValidateRequest(req Request) error {
	if err := ValidateText(req.Text, MaxTextLen); err != nil {
		return err
	}
	return ValidateLanguagePair(req.Source, req.Target)
}

// Sanitize strips control characters, collapses runs of whitespace and
// trims the result. Markup is reduced to its text content first, so pasted
// HTML fragments translate as plain text.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	if looksLikeMarkup(text) {
		text = StripMarkup(text)
	}
	text = controlChars.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripMarkup extracts the text content from an HTML fragment. On parse
// failure the input is returned unchanged.
func StripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}

func looksLikeMarkup(s string) bool {
	open := strings.IndexByte(s, '<')
	return open >= 0 && strings.IndexByte(s[open:], '>') > 0
}

// Truncate shortens text to at most maxLen runes, appending an ellipsis
// when anything was cut.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	const suffix = "..."
	if maxLen <= len(suffix) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(suffix)]) + suffix
}

// Preview extracts a short display preview, preferring a sentence or word
// boundary near the limit.
func Preview(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	head := string(runes[:maxLen])

	// Prefer a sentence ending in the second half of the window.
	lastSentence := -1
	for _, p := range []string{".", "!", "?"} {
		if i := strings.LastIndex(head, p); i > lastSentence {
			lastSentence = i
		}
	}
	if lastSentence >= maxLen/2 {
		return head[:lastSentence+1]
	}

	if i := strings.LastIndex(head, " "); i > 0 {
		return head[:i] + "..."
	}
	return head + "..."
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
