package jekyll

import (
	"regexp"
	"strings"
)

// wrapWidth bounds blurb lines in the emitted body.
const wrapWidth = 150

var blurbSpaceRe = regexp.MustCompile(`\s+`)

// WrapBlurb collapses whitespace and re-wraps the blurb into lines no wider
// than wrapWidth, splitting preferentially at sentence boundaries: a period
// followed by whitespace and an uppercase letter. An empty blurb yields a
// single empty line so the body paragraph keeps its shape.
func WrapBlurb(blurb string) []string {
	text := strings.TrimSpace(blurbSpaceRe.ReplaceAllString(blurb, " "))
	if text == "" {
		return []string{""}
	}

	sentences := splitSentences(text)

	var lines []string
	current := ""
	for _, s := range sentences {
		if current != "" && len(current)+len(s) > wrapWidth {
			lines = append(lines, strings.TrimSpace(current))
			current = s
			continue
		}
		if current == "" {
			current = s
		} else {
			current += " " + s
		}
	}
	if current != "" {
		lines = append(lines, strings.TrimSpace(current))
	}

	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// splitSentences cuts after a period when the next non-space rune is an
// uppercase letter. HTML tags inside the text are left intact.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue // no whitespace after the period, or end of text
		}
		if runes[j] >= 'A' && runes[j] <= 'Z' {
			sentences = append(sentences, string(runes[start:i+1]))
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}
