package understat

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/valyala/bytebufferpool"
)

// extractScriptVar locates `var <name> = JSON.parse('...')` inside the
// page's script tags and returns the decoded JSON bytes.
func extractScriptVar(page []byte, name string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	pattern, err := regexp.Compile(`var\s+` + regexp.QuoteMeta(name) + `\s*=\s*JSON\.parse\('(.+?)'\)`)
	if err != nil {
		return nil, err
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := pattern.FindStringSubmatch(s.Text()); m != nil {
			raw = m[1]
			return false
		}
		return true
	})
	if raw == "" {
		return nil, fmt.Errorf("script var %s not found", name)
	}

	return decodeEscapes([]byte(raw)), nil
}

// decodeEscapes resolves the JS string escapes Understat embeds the JSON
// with. \xNN sequences carry raw UTF-8 bytes and are written as-is;
// \uNNNN carries a code point.
func decodeEscapes(raw []byte) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i := 0; i < len(raw); {
		if raw[i] != '\\' || i+1 >= len(raw) {
			buf.WriteByte(raw[i])
			i++
			continue
		}

		switch raw[i+1] {
		case 'x':
			if i+4 <= len(raw) {
				if b, err := strconv.ParseUint(string(raw[i+2:i+4]), 16, 8); err == nil {
					buf.WriteByte(byte(b))
					i += 4
					continue
				}
			}
			buf.WriteByte(raw[i])
			i++
		case 'u':
			if i+6 <= len(raw) {
				if cp, err := strconv.ParseUint(string(raw[i+2:i+6]), 16, 32); err == nil {
					var enc [utf8.UTFMax]byte
					n := utf8.EncodeRune(enc[:], rune(cp))
					buf.Write(enc[:n])
					i += 6
					continue
				}
			}
			buf.WriteByte(raw[i])
			i++
		case '\\', '\'', '"', '/':
			buf.WriteByte(raw[i+1])
			i += 2
		case 'n':
			buf.WriteByte('\n')
			i += 2
		case 't':
			buf.WriteByte('\t')
			i += 2
		default:
			buf.WriteByte(raw[i])
			buf.WriteByte(raw[i+1])
			i += 2
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}
