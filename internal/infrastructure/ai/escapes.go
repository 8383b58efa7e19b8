package ai

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DecodeEscapes resolves \n \r \t \" \\ and \uXXXX in one left-to-right pass.
//
// Code points up to U+00FF become a single byte. Higher code points are written as
// UTF-8 and a surrogate pair becomes one rune. Unknown or short escapes are kept as-is.
func DecodeEscapes(s string) string {
	return decodeEscapes(s, false)
}

// DecodeEscapesUTF8 is DecodeEscapes with every non-ASCII \uXXXX written as UTF-8.
func DecodeEscapesUTF8(s string) string {
	return decodeEscapes(s, true)
}

func decodeEscapes(s string, utf8All bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case '"':
			b.WriteByte('"')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		case 'u':
			r, width, ok := readUnicodeEscape(s, i)
			if !ok {
				b.WriteByte(c)
				continue
			}
			writeCodePoint(&b, r, utf8All)
			i += width - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// readUnicodeEscape decodes the escape starting at s[at] (the backslash) and
// returns the code point and how many bytes it spans.
func readUnicodeEscape(s string, at int) (rune, int, bool) {
	hi, ok := hex4(s, at+2)
	if !ok {
		return 0, 0, false
	}
	if utf16.IsSurrogate(hi) && strings.HasPrefix(s[at+6:], `\u`) {
		if lo, ok := hex4(s, at+8); ok {
			if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
				return r, 12, true
			}
		}
	}
	return hi, 6, true
}

func hex4(s string, at int) (rune, bool) {
	if at+4 > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[at:at+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func writeCodePoint(b *strings.Builder, r rune, utf8All bool) {
	switch {
	case r < utf8.RuneSelf:
		b.WriteByte(byte(r))
	case r <= 0xFF && !utf8All:
		b.WriteByte(byte(r))
	default:
		b.WriteRune(r)
	}
}
