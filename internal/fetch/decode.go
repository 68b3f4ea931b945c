package fetch

import (
	"mime"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const defaultCharset = "utf-8"

// metaCharset matches <meta charset=...> and the http-equiv Content-Type form
var metaCharset = regexp.MustCompile(`(?i)<meta[^>]+charset`)

// charsetOf extracts the charset parameter of a Content-Type header value
func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

// decodeBody decodes body with the charset declared in contentType, or by
// a BOM or meta tag when the header declares none. Unknown charsets fall
// back to UTF-8, invalid sequences become U+FFFD.
func decodeBody(body []byte, contentType string) string {
	var enc encoding.Encoding
	if label := charsetOf(contentType); label != "" {
		var name string
		if enc, name = charset.Lookup(label); name == defaultCharset {
			enc = nil
		}
	} else if sniffed, name, certain := charset.DetermineEncoding(body, contentType); name != defaultCharset && (certain || declaresCharset(body)) {
		enc = sniffed
	}

	if enc != nil {
		if out, _, err := transform.Bytes(enc.NewDecoder(), body); err == nil {
			return string(out)
		}
	}
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

// declaresCharset reports whether a meta tag in the document head names a
// charset. Without one, a non-UTF-8 sniff result is only a guess.
func declaresCharset(body []byte) bool {
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	return metaCharset.Match(head)
}
