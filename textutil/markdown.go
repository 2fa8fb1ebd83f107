// Package textutil cleans generated model output into plain text.
package textutil

import (
	"regexp"
	"strings"
)

var multiNewline = regexp.MustCompile(`\n{3,}`)

// Bullet markers checked per line, longest first so "- " wins over "-".
var (
	spacedBullets = []string{"- ", "* ", "• "}
	bareBullets   = []string{"-", "*", "•"}
)

// CleanMarkdown strips common markdown markup from generated text. Heading
// and bold markers are removed as plain substrings, bullet markers are
// removed per line, and runs of three or more newlines collapse to two.
// Already-plain text passes through unchanged.
func CleanMarkdown(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "### ", "")
	text = strings.ReplaceAll(text, "## ", "")
	text = strings.ReplaceAll(text, "# ", "")
	text = strings.ReplaceAll(text, "**", "")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, stripBullet(line))
	}
	text = strings.Join(cleaned, "\n")

	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripBullet removes a leading bullet marker from a line. Lines without a
// marker are kept verbatim, including their leading whitespace.
func stripBullet(line string) string {
	stripped := strings.TrimSpace(line)
	for _, marker := range spacedBullets {
		if strings.HasPrefix(stripped, marker) {
			return strings.TrimSpace(stripped[len(marker):])
		}
	}
	for _, marker := range bareBullets {
		if strings.HasPrefix(stripped, marker) {
			return strings.TrimSpace(stripped[len(marker):])
		}
	}
	return line
}
