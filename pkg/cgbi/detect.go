package cgbi

import "bytes"

// pngHeader is the 8-byte magic prefix every valid PNG stream starts with.
const pngHeader = "\x89PNG\r\n\x1a\n"

// cgbiPrefix is the chunk framing (4-byte length, 4-byte tag) of the CgBI
// chunk Apple inserts immediately after the magic header. Its presence is
// what distinguishes the two formats.
var cgbiPrefix = []byte{0x00, 0x00, 0x00, 0x04, 'C', 'g', 'B', 'I'}

// HasMagicHeader reports whether data begins with the PNG magic header.
func HasMagicHeader(data []byte) bool {
	return len(data) >= len(pngHeader) && string(data[:len(pngHeader)]) == pngHeader
}

// HasCgbiMarker reports whether the 8-byte window at offset matches the CgBI
// chunk framing prefix. Buffers shorter than the window simply fail the
// comparison; that is never an error.
func HasCgbiMarker(data []byte, offset int) bool {
	if offset < 0 || len(data) < offset+len(cgbiPrefix) {
		return false
	}
	return bytes.Equal(data[offset:offset+len(cgbiPrefix)], cgbiPrefix)
}

// IsStandardPNG reports whether data is a PNG without the CgBI marker.
func IsStandardPNG(data []byte) bool {
	return HasMagicHeader(data) && !HasCgbiMarker(data, len(pngHeader))
}

// IsCgbiPNG reports whether data is a PNG carrying the CgBI marker.
func IsCgbiPNG(data []byte) bool {
	return HasMagicHeader(data) && HasCgbiMarker(data, len(pngHeader))
}
