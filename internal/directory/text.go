package directory

import (
	"strings"
	"unicode/utf8"
)

// decodeText turns the raw bytes of a base64-encoded indexer text field
// (already unwrapped to bytes by the JSON layer) into a printable UTF-8
// string, falling back to the plain field when the bytes are empty. Each
// invalid byte becomes one replacement character rather than propagating
// into the UI.
func decodeText(raw []byte, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	if utf8.Valid(raw) {
		return string(raw)
	}

	var b strings.Builder
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(raw[i : i+size])
		}
		i += size
	}
	return b.String()
}
