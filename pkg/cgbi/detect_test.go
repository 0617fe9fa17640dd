package cgbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetection(t *testing.T) {
	standard := append([]byte(pngHeader), 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R')
	apple := append([]byte(pngHeader), cgbiMarker...)

	tests := []struct {
		name       string
		data       []byte
		magic      bool
		marker     bool
		isStandard bool
		isCgbi     bool
	}{
		{"Nil", nil, false, false, false, false},
		{"Empty", []byte{}, false, false, false, false},
		{"ShortMagic", []byte(pngHeader[:5]), false, false, false, false},
		{"MagicOnly", []byte(pngHeader), true, false, true, false},
		{"NotPNG", []byte("GIF89a something"), false, false, false, false},
		{"Standard", standard, true, false, true, false},
		{"CgBI", apple, true, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.magic, HasMagicHeader(tt.data))
			assert.Equal(t, tt.marker, HasCgbiMarker(tt.data, len(pngHeader)))
			assert.Equal(t, tt.isStandard, IsStandardPNG(tt.data))
			assert.Equal(t, tt.isCgbi, IsCgbiPNG(tt.data))

			// The two classifications are mutually exclusive for any input.
			assert.False(t, IsStandardPNG(tt.data) && IsCgbiPNG(tt.data))
		})
	}
}

func TestHasCgbiMarker_Offsets(t *testing.T) {
	buf := append(make([]byte, 3), cgbiPrefix...)

	assert.True(t, HasCgbiMarker(buf, 3))
	assert.False(t, HasCgbiMarker(buf, 0))
	assert.False(t, HasCgbiMarker(buf, -1))
	assert.False(t, HasCgbiMarker(buf, len(buf)-4), "window past the end fails the match")
}
