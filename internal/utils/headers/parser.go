package headers

import (
	"net/textproto"
	"strings"
)

// ParseHeaders converts "Key: Value" strings into a map keyed by canonical
// header name. Entries without a colon or with an empty key are dropped;
// a later entry for the same header replaces an earlier one.
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string)
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		m[textproto.CanonicalMIMEHeaderKey(key)] = strings.TrimSpace(value)
	}
	return m
}
