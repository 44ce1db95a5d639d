package utils

import (
	"bytes"
	"unicode/utf8"
)

// IsBinary reports whether data cannot be treated as text: it is not valid UTF-8
// or it contains a NUL byte. A NUL byte marks the file as binary even when the rest
// of it decodes as UTF-8, so such files are skipped rather than collected.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	return bytes.IndexByte(data, 0) >= 0
}
