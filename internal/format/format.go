// Package format lays out plain text for a fixed-width thermal printer
// line: greedy word wrapping followed by center padding.
package format

import "strings"

// Wrap fits every line of text into width columns. Lines that fit are
// centered with floor((width-len)/2) leading spaces, measured on the raw
// line; existing spacing inside a fitting line is preserved. Longer lines
// are word-wrapped greedily, which normalizes their whitespace, and each
// resulting segment is centered. A single word longer than width passes
// through unsplit; the overflow is accepted rather than breaking the word.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= width {
			out = append(out, center(line, width))
			continue
		}
		for _, segment := range wrapLine(line, width) {
			out = append(out, center(segment, width))
		}
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var segments []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
			continue
		}
		segments = append(segments, current)
		current = word
	}
	segments = append(segments, current)
	return segments
}

func center(line string, width int) string {
	if len(line) >= width {
		return line
	}
	pad := (width - len(line)) / 2
	return strings.Repeat(" ", pad) + line
}
