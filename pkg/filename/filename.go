// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package filename builds safe Content-Disposition values for file downloads.
//
// # Usage
//
// Document names at the center are mostly Cyrillic («Анамнез Иванова.pdf»).
// HTTP headers are latin-1 territory, so every download carries an ASCII
// fallback name plus the RFC 5987 UTF-8 form that modern clients prefer.
package filename

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// unsafeASCII matches every character not allowed in the fallback name.
	unsafeASCII = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	// multiUnderscore collapses runs of underscores left by sanitization.
	multiUnderscore = regexp.MustCompile(`_{2,}`)
)

// ASCIIFallback reduces an arbitrary Unicode name to a plain-ASCII one.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Strips combining marks and every remaining non-ASCII rune.
// 3. Replaces unsafe characters with underscores and collapses runs.
//
// Names that end up empty (pure-Cyrillic input) fall back to "file" so the
// header never carries an empty filename token.
func ASCIIFallback(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(isNonASCII)))
	result, _, err := transform.String(t, name)
	if err != nil {
		result = ""
	}

	result = unsafeASCII.ReplaceAllString(result, "_")
	result = multiUnderscore.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")

	if result == "" || result == "." {
		return "file"
	}
	return result
}

// ContentDisposition builds an attachment header value for the given name.
//
// The filename* parameter carries the URL-escaped UTF-8 original per RFC 5987;
// filename carries the ASCII fallback for legacy clients.
func ContentDisposition(name string) string {
	return fmt.Sprintf(`attachment; filename=%s; filename*=UTF-8''%s`,
		ASCIIFallback(name), url.PathEscape(name))
}

// isNonASCII reports whether r falls outside the printable ASCII range.
func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}
