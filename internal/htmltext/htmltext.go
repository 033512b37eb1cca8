// Package htmltext reduces an HTML message body to the plain text used as
// an event description.
package htmltext

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// Extract returns the text inside <body>, with a newline for every <br>
// and <p>, trimmed of surrounding whitespace. Line breaks are emitted
// wherever the tags appear. When the markup never opens a <body>, all text
// counts, so plain text comes back unchanged apart from trimming.
// Malformed markup never fails; at worst the result is partial.
func Extract(markup string) string {
	var (
		inBody  bool
		sawBody bool
		body    strings.Builder
		all     strings.Builder
	)
	newline := func() {
		body.WriteByte('\n')
		all.WriteByte('\n')
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way the stream is over.
			if sawBody {
				return strings.TrimSpace(body.String())
			}
			return strings.TrimSpace(all.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "body":
				if tt == html.StartTagToken {
					inBody = true
					sawBody = true
				}
			case "br":
				newline()
			case "p":
				if tt == html.StartTagToken {
					newline()
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "body" {
				inBody = false
			}

		case html.TextToken:
			text := z.Text()
			all.Write(text)
			if inBody {
				body.Write(text)
			}
		}
	}
}

// DecodeBody converts a raw HTML body to UTF-8. Valid UTF-8 is used as is.
// Otherwise a BOM or <meta charset> decides, and failing that fallback
// (nil keeps windows-1252, the HTML default).
func DecodeBody(raw []byte, fallback encoding.Encoding) string {
	raw = bytes.TrimRight(raw, "\x00")
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), "\ufeff")
	}

	enc, name, certain := charset.DetermineEncoding(raw, "text/html")
	if !certain && name == "windows-1252" && fallback != nil {
		// Nothing in the document named a charset; this is the default guess.
		enc = fallback
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
