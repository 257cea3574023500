// Package escpos assembles complete ESC/POS command sequences for a print
// job: initialization, darkness, font, alignment, the width-formatted body,
// feed and cut. The output is a byte buffer transmitted verbatim to the
// device.
package escpos

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/cetakin/printd/internal/format"
	"github.com/cetakin/printd/internal/job"
	"github.com/cetakin/printd/internal/registry"
)

// ErrConfiguration marks settings whose ids do not resolve in their
// registry. Channels that do not encode (the render fallback) are not
// affected by it.
var ErrConfiguration = errors.New("print settings do not resolve")

const feedAfterBody = 3

type Encoder struct {
	reg *registry.Registry
}

func NewEncoder(reg *registry.Registry) *Encoder {
	return &Encoder{reg: reg}
}

// Encode resolves all four profile ids before producing a single byte, then
// assembles the device command sequence around the formatted body.
func (e *Encoder) Encode(content string, settings job.Settings) ([]byte, error) {
	printer, err := e.reg.Printer(settings.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: destination %q", ErrConfiguration, settings.Destination)
	}
	paper, err := e.reg.Paper(settings.PaperSize)
	if err != nil {
		return nil, fmt.Errorf("%w: paper size %q", ErrConfiguration, settings.PaperSize)
	}
	font, err := e.reg.Font(settings.FontType)
	if err != nil {
		return nil, fmt.Errorf("%w: font %q", ErrConfiguration, settings.FontType)
	}
	density, err := e.reg.Density(settings.Density)
	if err != nil {
		return nil, fmt.Errorf("%w: density %q", ErrConfiguration, settings.Density)
	}

	cs := printer.Commands

	var buf bytes.Buffer
	buf.Write(cs.Init)
	buf.Write(cs.SetDensity(density.Level))
	buf.Write(font.Command)
	buf.Write(cs.AlignCenter)

	body := format.Wrap(content, paper.Width)
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteByte('\n')
	}

	buf.Write(cs.FeedLines(feedAfterBody))

	switch settings.CutType {
	case job.CutFull:
		buf.Write(cs.CutFull)
	case job.CutPartial:
		buf.Write(cs.CutPartial)
	case job.CutNone:
	}

	return buf.Bytes(), nil
}
