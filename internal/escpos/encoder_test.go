package escpos

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cetakin/printd/internal/job"
	"github.com/cetakin/printd/internal/registry"
)

func validSettings() job.Settings {
	return job.Settings{
		Destination: "epson-tm-t82",
		PaperSize:   "80mm",
		FontType:    "font-a",
		Density:     "normal",
		CutType:     job.CutFull,
		Copies:      1,
	}
}

func TestEncodeUnresolvedSettings(t *testing.T) {
	e := NewEncoder(registry.New())

	tests := []struct {
		name   string
		mutate func(*job.Settings)
	}{
		{"unknown destination", func(s *job.Settings) { s.Destination = "laserjet-4" }},
		{"unknown paper", func(s *job.Settings) { s.PaperSize = "a4" }},
		{"unknown font", func(s *job.Settings) { s.FontType = "font-z" }},
		{"unknown density", func(s *job.Settings) { s.Density = "midnight" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(&settings)

			buf, err := e.Encode("hello", settings)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Nil(t, buf, "no bytes may be produced for unresolvable settings")
		})
	}
}

func TestEncodeAssemblesCommandSequence(t *testing.T) {
	e := NewEncoder(registry.New())

	buf, err := e.Encode("NOTA", validSettings())
	require.NoError(t, err)

	// Initialization comes first, before any styling or body bytes.
	assert.True(t, bytes.HasPrefix(buf, []byte{0x1B, '@'}))

	// Darkness, font and centering precede the body.
	assert.Contains(t, string(buf), string([]byte{0x1D, '(', 'K', 2, 0, 49, 8}))
	assert.Contains(t, string(buf), string([]byte{0x1B, 'M', 0}))
	assert.Contains(t, string(buf), string([]byte{0x1B, 'a', 1}))

	// The body is centered on the 48-column paper.
	assert.Contains(t, string(buf), strings.Repeat(" ", 22)+"NOTA\n")

	// Feed then cut close the sequence.
	assert.True(t, bytes.HasSuffix(buf, []byte{0x1B, 'd', 3, 0x1D, 'V', 0}))
}

func TestEncodeCutVariants(t *testing.T) {
	e := NewEncoder(registry.New())

	partial := validSettings()
	partial.CutType = job.CutPartial
	buf, err := e.Encode("x", partial)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(buf, []byte{0x1D, 'V', 1}))

	none := validSettings()
	none.CutType = job.CutNone
	buf, err = e.Encode("x", none)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(buf, []byte{0x1D, 'V', 0}))
	assert.True(t, bytes.HasSuffix(buf, []byte{0x1B, 'd', 3}), "feed still happens without a cut")
}

func TestEncodeWrapsToPaperWidth(t *testing.T) {
	e := NewEncoder(registry.New())

	narrow := validSettings()
	narrow.PaperSize = "58mm"

	buf, err := e.Encode("Banner spanduk ukuran tiga kali satu meter bahan flexi", narrow)
	require.NoError(t, err)

	// Body lines never exceed the 32-column paper.
	body := string(buf)
	for _, line := range bytes.Split([]byte(body), []byte("\n")) {
		printable := bytes.TrimLeft(line, " ")
		if len(printable) > 0 && printable[0] >= 0x20 && printable[0] < 0x7F {
			assert.LessOrEqual(t, len(line), 32)
		}
	}
}
