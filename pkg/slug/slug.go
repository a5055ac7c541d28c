// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds free-form labels into ASCII slugs.
//
// Book genres are stored as slugs, so "Science Fiction" and "science-fiction"
// land on the same shelf filter.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// Accents are stripped after NFD decomposition, so "Ciência" becomes
// "ciencia". The result may be empty when s holds no letters or digits.
func From(s string) string {
	folded, _, _ := transform.String(transform.Chain(norm.NFD, transform.RemoveFunc(isMn)), s)
	folded = strings.ToLower(folded)

	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, folded)

	folded = nonAlphanumeric.ReplaceAllString(folded, "-")
	folded = multiHyphen.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
