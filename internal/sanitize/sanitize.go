// Package sanitize turns arbitrary page names into portable filesystem names.
//
// The rules are applied identically on every platform, so an export taken on
// Linux can be copied to Windows or macOS without renaming anything.
package sanitize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxSegmentBytes bounds a segment so that the segment plus the longest
// suffix the exporter appends (".meta.json") fits the 255-byte name limit
// of common filesystems.
const MaxSegmentBytes = 255 - len(".meta.json")

// Replacement is substituted for every character that cannot appear in a segment.
const Replacement = '_'

// illegalChars are rejected by at least one of NTFS, APFS or ext4.
const illegalChars = `/\?<>:*|"`

// reservedNames are Windows device names, matched case-insensitively on the
// part before the first dot.
var reservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com0": {}, "com1": {}, "com2": {}, "com3": {}, "com4": {},
	"com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt0": {}, "lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {},
	"lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// Segment returns name as a single path segment.
//
// The result never contains a separator, is never empty, is never "." or
// "..", and never names a Windows device. Characters outside those rules are
// kept as-is after NFC normalization.
func Segment(name string) string {
	s := strings.ToValidUTF8(name, string(Replacement))
	s = norm.NFC.String(s)
	s = strings.Map(replaceIllegal, s)
	s = trimTrailing(s)
	s = escapeReserved(s)
	s = truncate(s, MaxSegmentBytes)
	s = trimTrailing(s)

	if s == "" {
		return string(Replacement)
	}
	return s
}

// FoldKey returns the key under which two segments collide on a
// case-insensitive filesystem.
func FoldKey(segment string) string {
	return cases.Fold().String(segment)
}

func replaceIllegal(r rune) rune {
	switch {
	case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
		return Replacement
	case strings.ContainsRune(illegalChars, r):
		return Replacement
	default:
		return r
	}
}

// trimTrailing drops trailing dots and spaces, which Windows silently strips.
// Dot-only names such as "." and ".." reduce to the empty string here.
func trimTrailing(s string) string {
	return strings.TrimRight(s, ". ")
}

func escapeReserved(s string) string {
	base, ext, hasExt := strings.Cut(s, ".")
	if _, reserved := reservedNames[strings.ToLower(strings.TrimSpace(base))]; !reserved {
		return s
	}
	if hasExt {
		return base + string(Replacement) + "." + ext
	}
	return base + string(Replacement)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
