package acta

import (
	"fmt"
	"unicode/utf16"
)

// #region checksum
// Checksum is the record's toy trace hash: a 31-multiplier rolling sum over
// UTF-16 code units with int32 wraparound, absolute value, 8-digit hex.
// It is order and length sensitive and trivially collidable.
func Checksum(data string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(data)) {
		h = (h << 5) - h + int32(unit)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%08x", abs)
}
// #endregion checksum
