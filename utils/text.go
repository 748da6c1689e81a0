package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup from rich-text product fields so they can be
// embedded in a plain-text prompt.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatPriceVND renders a price with Vietnamese digit grouping,
// e.g. 1234567 -> "1.234.567đ".
func FormatPriceVND(price int64) string {
	return vndPrinter.Sprintf("%d", price) + "đ"
}
