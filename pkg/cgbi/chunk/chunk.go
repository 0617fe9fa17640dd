// Package chunk implements the PNG chunk framing codec: length-prefixed,
// type-tagged, CRC-trailed segments, plus the 13-byte IHDR payload layout.
package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/snksoft/crc"
)

// Well-known chunk type tags.
const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
	TypeCgBI = "CgBI"
	TypeiDOT = "iDOT"
)

// Chunk is one framed PNG segment. CRC covers Type ++ Payload, not Length.
type Chunk struct {
	Length  uint32
	Type    string
	Payload []byte
	CRC     uint32
	Raw     []byte // the full framed bytes, for verbatim re-emit
}

// Reader is a sequential cursor over an immutable byte buffer. Reads past the
// end of the buffer return truncated views rather than failing; scan loops
// gate on More.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a cursor positioned at the start of buf.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// NewReaderAt returns a cursor positioned at off.
func NewReaderAt(buf []byte, off int) *Reader {
	if off > len(buf) {
		off = len(buf)
	}
	return &Reader{buf: buf, off: off}
}

// More reports whether any unread bytes remain.
func (r *Reader) More() bool { return r.off < len(r.buf) }

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Next returns a view of the next n bytes and advances the cursor. The view
// is truncated when fewer than n bytes remain; n < 0 reads nothing.
func (r *Reader) Next(n int) []byte {
	if n < 0 {
		n = 0
	}
	end := r.off + n
	if end > len(r.buf) {
		end = len(r.buf)
	}
	b := r.buf[r.off:end]
	r.off = end
	return b
}

// Decode reads one chunk at the cursor: 4-byte big-endian length, 4-byte
// type tag, payload, 4-byte CRC, in that fixed order. The stored CRC is read
// but never verified. Truncated input yields a truncated chunk; callers gate
// their scan loops on More.
func Decode(r *Reader) Chunk {
	start := r.off
	length := u32(r.Next(4))
	typ := string(r.Next(4))
	payload := r.Next(int(length))
	sum := u32(r.Next(4))
	return Chunk{
		Length:  length,
		Type:    typ,
		Payload: payload,
		CRC:     sum,
		Raw:     r.buf[start:r.off],
	}
}

// Complete reports whether the chunk was fully framed in the input, with no
// payload or CRC bytes lost to truncation.
func (c Chunk) Complete() bool {
	return uint64(len(c.Raw)) == 12+uint64(c.Length)
}

// Encode frames payload as a chunk of the given type tag with a freshly
// computed CRC-32 over type ++ payload.
func Encode(typ string, payload []byte) []byte {
	out := make([]byte, 0, 12+len(payload))
	var u [4]byte
	binary.BigEndian.PutUint32(u[:], uint32(len(payload)))
	out = append(out, u[:]...)
	out = append(out, typ...)
	out = append(out, payload...)
	binary.BigEndian.PutUint32(u[:], Sum(typ, payload))
	return append(out, u[:]...)
}

// Sum computes the standard CRC-32 (IEEE polynomial) over typ ++ payload.
func Sum(typ string, payload []byte) uint32 {
	h := crc.NewHash(crc.CRC32)
	h.Update([]byte(typ))
	h.Update(payload)
	return uint32(h.CRC())
}

// IHDR holds the decoded fields of the 13-byte image header payload.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// ParseIHDR decodes the 13-byte IHDR chunk payload.
func ParseIHDR(payload []byte) (IHDR, error) {
	if len(payload) != 13 {
		return IHDR{}, fmt.Errorf("bad IHDR length: %d", len(payload))
	}
	ihdr := IHDR{
		Width:             binary.BigEndian.Uint32(payload[0:4]),
		Height:            binary.BigEndian.Uint32(payload[4:8]),
		BitDepth:          payload[8],
		ColorType:         payload[9],
		CompressionMethod: payload[10],
		FilterMethod:      payload[11],
		InterlaceMethod:   payload[12],
	}
	if ihdr.Width == 0 || ihdr.Height == 0 {
		return IHDR{}, fmt.Errorf("bad IHDR dimensions: %dx%d", ihdr.Width, ihdr.Height)
	}
	return ihdr, nil
}

func u32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
