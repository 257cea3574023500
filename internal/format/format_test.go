package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapCentersShortLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "odd padding rounds down",
			text:  "HELLO",
			width: 11,
			want:  "   HELLO",
		},
		{
			name:  "exact fit is not padded",
			text:  "0123456789",
			width: 10,
			want:  "0123456789",
		},
		{
			name:  "two lines centered independently",
			text:  "AB\nABCD",
			width: 8,
			want:  "   AB\n  ABCD",
		},
		{
			name:  "fitting line keeps its own spacing",
			text:  "  AB",
			width: 8,
			want:  "    AB",
		},
		{
			name:  "aligned columns are not collapsed",
			text:  "A  B",
			width: 8,
			want:  "  A  B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}

func TestWrapBreaksLongLines(t *testing.T) {
	got := Wrap("HELLOWORLD EVERYONE", 10)
	assert.Equal(t, "HELLOWORLD\n EVERYONE", got)
}

func TestWrapKeepsOversizedWordIntact(t *testing.T) {
	word := strings.Repeat("X", 25)
	got := Wrap(word+" OK", 10)

	lines := strings.Split(got, "\n")
	assert.Equal(t, word, lines[0])
	assert.Equal(t, "    OK", lines[1])
}

func TestWrapPreservesEveryWord(t *testing.T) {
	text := "Banner spanduk ukuran 3 x 1 meter bahan flexi 280gsm finishing mata ayam"
	got := Wrap(text, 32)

	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 32)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(got))
}

func TestWrapDegenerateWidth(t *testing.T) {
	assert.Equal(t, "unchanged text", Wrap("unchanged text", 0))
}
