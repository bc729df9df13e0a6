package device

import "unicode/utf8"

// invalidUTF8 returns the offset of the first byte that is not part of a valid UTF-8 sequence, or -1
func invalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
