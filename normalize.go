package amzcrawl

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice parses localized price text such as "$1,234.56",
// "1.234,56 €" or "¥2,999" using the region's decimal convention.
//
// Everything except digits, '.', ',' and '-' is discarded. Range text
// ("10 - 20") yields only the first segment. Returns false when nothing
// numeric remains.
func ParsePrice(text string, region Region) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if ('0' <= r && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0, false
	}

	if i := strings.IndexByte(cleaned, '-'); i >= 0 {
		cleaned = cleaned[:i]
	}
	if cleaned == "" {
		return 0, false
	}

	if region.CommaDecimal {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseStars parses star text such as "4.5 out of 5 stars" or
// "4,5 von 5 Sternen" from its first whitespace-delimited token.
func ParseStars(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseReviewCount parses review count text such as "12,345 ratings" or
// "1.234 Bewertungen". Unparsable text yields 0.
func ParseReviewCount(text string) int {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
