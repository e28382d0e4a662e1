package protocol

import (
	"strconv"
	"strings"
)

// #region decode
// Decode reads a bracketed numeric key as A1Z26 letter positions:
// "[8·5·19·20·9·1]" becomes "HESTIA". A leading literal letter followed by
// "•" is kept as-is. Returns false when the key is not well formed.
func Decode(key string) (string, bool) {
	if !strings.HasPrefix(key, "[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(key, "["), "]")
	if body == "" {
		return "", false
	}

	var b strings.Builder
	if prefix, rest, ok := strings.Cut(body, "•"); ok {
		b.WriteString(prefix)
		body = rest
	}
	for _, part := range strings.Split(body, "·") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 26 {
			return "", false
		}
		b.WriteByte(byte('A' + n - 1))
	}
	return b.String(), true
}
// #endregion decode
