package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// The transformer chain is stateful, so it is built per call rather than
// shared between concurrent requests.
func stripDiacritics(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

func dropNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToSnakeCase maps free-form text (turma, guardian and child names) to a
// lowercase URL-safe token: diacritics stripped, runs of anything outside
// [a-z0-9] collapsed to a single underscore, leading/trailing underscores
// trimmed. "José Álvares" becomes "jose_alvares".
func ToSnakeCase(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = stripDiacritics(s)
	s = nonAlnumRun.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SlugifyFileName normalizes a client-supplied file name. The extension is
// split off at the last dot and lowercased; the base is slugged the same way
// as ToSnakeCase but with dashes, with non-ASCII leftovers dropped instead of
// dashed. An empty base falls back to "foto".
func SlugifyFileName(name string) string {
	base := name
	ext := ""
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		base = name[:idx]
		ext = strings.ToLower(name[idx:])
	}

	s := strings.ToLower(strings.TrimSpace(base))
	s = stripDiacritics(s)
	s = dropNonASCII(s)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "foto"
	}
	return s + ext
}

// BuildObjectKey derives the storage key for one photo slot:
// <turma>/<guardian>/<child>/<photoIndex+1>-<safeFileName>. The 1-based
// prefix keeps a child's photos sorted by upload order when listed
// lexicographically. Deterministic, so the key persisted at creation time can
// never drift from one derived for the same inputs later.
//
// Two children of the same guardian with identical normalized names share the
// same <guardian>/<child>/ prefix and their photo keys can collide per slot.
func BuildObjectKey(turma, guardianName, childName string, photoIndex int, fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%d-%s",
		ToSnakeCase(turma),
		ToSnakeCase(guardianName),
		ToSnakeCase(childName),
		photoIndex+1,
		SlugifyFileName(fileName),
	)
}
