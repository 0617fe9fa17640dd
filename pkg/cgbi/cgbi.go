// Package cgbi converts PNG images between the standard container format and
// Apple's proprietary CgBI variant, used by iOS for pre-decoded BGRA textures.
//
// The two formats differ in exactly three ways:
//   - CgBI files carry a fixed CgBI chunk between the magic header and IHDR
//   - CgBI image data is raw (headerless) DEFLATE rather than zlib-wrapped
//   - CgBI pixels are stored BGRA instead of RGBA
//
// Convert detects the input format and rewrites it as the other:
//
//	out, err := cgbi.Convert(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Only non-interlaced 8-bit RGBA image data (color type 6) is supported; the
// red/blue swap assumes 4-byte pixels. All IDAT payloads are reassembled into
// a single chunk and Apple's iDOT split-IDAT index is dropped.
package cgbi

import (
	"bytes"
	"fmt"

	"github.com/jpfielding/cgbi.go/pkg/cgbi/chunk"
	"github.com/jpfielding/cgbi.go/pkg/compress/zflate"
)

// cgbiPayload is the fixed 4-byte payload Apple writes in the CgBI chunk.
// Its meaning is undocumented; the bytes are emitted verbatim.
var cgbiPayload = []byte{0x50, 0x00, 0x20, 0x06}

// cgbiMarker is the full 16-byte CgBI chunk (framing, payload, CRC) inserted
// after the magic header when producing a CgBI file.
var cgbiMarker = chunk.Encode(chunk.TypeCgBI, cgbiPayload)

// iendChunk is the canonical zero-length terminal chunk.
var iendChunk = chunk.Encode(chunk.TypeIEND, nil)

// direction selects the codec pair for one conversion. CgBI image data is
// raw DEFLATE while standard PNG image data is zlib-wrapped, so converting
// always inflates with the input's framing and deflates with the other.
type direction int

const (
	toStandard direction = iota // input is CgBI, output standard PNG
	toCgBI                      // input is standard PNG, output CgBI
)

func (d direction) inflate(data []byte) ([]byte, error) {
	if d == toStandard {
		return zflate.InflateRaw(data)
	}
	return zflate.Inflate(data)
}

func (d direction) deflate(data []byte) ([]byte, error) {
	if d == toStandard {
		return zflate.Deflate(data)
	}
	return zflate.DeflateRaw(data)
}

// Convert rewrites a standard PNG as a CgBI PNG, or a CgBI PNG as a standard
// one, detecting the direction from the presence of the CgBI marker. It
// returns either a complete well-formed stream or an error; there is no
// partial output. Incoming chunk CRCs are not verified; every chunk this
// function constructs carries a freshly computed CRC.
func Convert(data []byte) ([]byte, error) {
	r := chunk.NewReader(data)
	if string(r.Next(len(pngHeader))) != pngHeader {
		return nil, FormatError("not a PNG file")
	}

	var out bytes.Buffer
	out.WriteString(pngHeader)

	dir := toCgBI
	if HasCgbiMarker(data, r.Offset()) {
		// CgBI input: swallow the marker chunk, emit nothing in its place.
		dir = toStandard
		r.Next(len(cgbiMarker))
	} else {
		out.Write(cgbiMarker)
	}

	ihdr, err := expectIHDR(r, &out)
	if err != nil {
		return nil, err
	}

	// Single linear scan: accumulate IDAT payloads, drop iDOT, copy anything
	// else verbatim. Scanning stops at IEND; trailing bytes are ignored.
	var idat bytes.Buffer
	for r.More() {
		c := chunk.Decode(r)
		if !c.Complete() {
			// Trailing bytes too short to frame a chunk; treat as exhaustion.
			break
		}
		switch c.Type {
		case chunk.TypeIDAT:
			idat.Write(c.Payload)
		case chunk.TypeiDOT:
			// Apple's split-IDAT offset index, stale once IDAT is reassembled.
		case chunk.TypeIEND:
			return finalize(&out, idat.Bytes(), ihdr, dir)
		default:
			out.Write(c.Raw)
		}
	}
	return finalize(&out, idat.Bytes(), ihdr, dir)
}

// expectIHDR decodes the chunk after the magic/CgBI prefix, which must be
// IHDR, and re-emits it unchanged. IHDR content is identical in both formats.
func expectIHDR(r *chunk.Reader, out *bytes.Buffer) (chunk.IHDR, error) {
	c := chunk.Decode(r)
	if c.Type != chunk.TypeIHDR {
		return chunk.IHDR{}, FormatError(fmt.Sprintf("expected IHDR chunk, got % X", []byte(c.Type)))
	}
	ihdr, err := chunk.ParseIHDR(c.Payload)
	if err != nil {
		return chunk.IHDR{}, FormatError(err.Error())
	}
	out.Write(c.Raw)
	return ihdr, nil
}

// finalize recodes the accumulated image data and closes out the stream:
// inflate with the input framing, swap red/blue, deflate with the output
// framing, frame as one IDAT, append the canonical IEND.
func finalize(out *bytes.Buffer, idat []byte, ihdr chunk.IHDR, dir direction) ([]byte, error) {
	raw, err := dir.inflate(idat)
	if err != nil {
		return nil, fmt.Errorf("inflating image data: %w", err)
	}
	if err := swapRedBlue(raw, int(ihdr.Width), int(ihdr.Height)); err != nil {
		return nil, err
	}
	packed, err := dir.deflate(raw)
	if err != nil {
		return nil, fmt.Errorf("deflating image data: %w", err)
	}
	out.Write(chunk.Encode(chunk.TypeIDAT, packed))
	out.Write(iendChunk)
	return out.Bytes(), nil
}
