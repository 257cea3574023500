package registry

// ESC/POS control bytes.
const (
	esc byte = 0x1B
	gs  byte = 0x1D
)

// CommandSet holds the device command primitives for one printer profile.
// Static sequences are stored as byte slices; parameterized commands are
// built by the methods below.
type CommandSet struct {
	Init         []byte
	AlignLeft    []byte
	AlignCenter  []byte
	AlignRight   []byte
	BoldOn       []byte
	BoldOff      []byte
	DoubleHeight []byte
	NormalSize   []byte
	FontA        []byte
	FontB        []byte
	FontC        []byte
	UnderlineOn  []byte
	UnderlineOff []byte
	CutFull      []byte
	CutPartial   []byte
}

// FeedLines advances the paper by n lines.
func (c CommandSet) FeedLines(n byte) []byte {
	return []byte{esc, 'd', n}
}

// SetDensity selects the print darkness level (GS ( K, fn=49).
func (c CommandSet) SetDensity(level byte) []byte {
	return []byte{gs, '(', 'K', 0x02, 0x00, 49, level}
}

// SetPrintWidth sets the printable area width in motion units (GS W).
func (c CommandSet) SetPrintWidth(dots int) []byte {
	return []byte{gs, 'W', byte(dots & 0xFF), byte(dots >> 8)}
}

// Barcode prints data as CODE128 with HRI text below the bars.
func (c CommandSet) Barcode(data string) []byte {
	buf := make([]byte, 0, len(data)+10)
	buf = append(buf, gs, 'H', 2)  // HRI below
	buf = append(buf, gs, 'h', 80) // bar height in dots
	buf = append(buf, gs, 'k', 73, byte(len(data)))
	buf = append(buf, data...)
	return buf
}

// QRCode prints data as a QR symbol (model 2, module size 4).
func (c CommandSet) QRCode(data string) []byte {
	buf := make([]byte, 0, len(data)+24)
	buf = append(buf, gs, '(', 'k', 4, 0, 49, 65, 50, 0) // model 2
	buf = append(buf, gs, '(', 'k', 3, 0, 49, 67, 4)     // module size
	storeLen := len(data) + 3
	buf = append(buf, gs, '(', 'k', byte(storeLen&0xFF), byte(storeLen>>8), 49, 80, 48)
	buf = append(buf, data...)
	buf = append(buf, gs, '(', 'k', 3, 0, 49, 81, 48) // print symbol
	return buf
}

// escposCommands is the command set shared by the supported ESC/POS printers.
// Profiles that lack a partial cutter reuse the full-cut sequence for it.
func escposCommands(hasPartialCut bool) CommandSet {
	cs := CommandSet{
		Init:         []byte{esc, '@'},
		AlignLeft:    []byte{esc, 'a', 0},
		AlignCenter:  []byte{esc, 'a', 1},
		AlignRight:   []byte{esc, 'a', 2},
		BoldOn:       []byte{esc, 'E', 1},
		BoldOff:      []byte{esc, 'E', 0},
		DoubleHeight: []byte{gs, '!', 0x01},
		NormalSize:   []byte{gs, '!', 0x00},
		FontA:        []byte{esc, 'M', 0},
		FontB:        []byte{esc, 'M', 1},
		FontC:        []byte{esc, 'M', 2},
		UnderlineOn:  []byte{esc, '-', 1},
		UnderlineOff: []byte{esc, '-', 0},
		CutFull:      []byte{gs, 'V', 0},
		CutPartial:   []byte{gs, 'V', 1},
	}
	if !hasPartialCut {
		cs.CutPartial = cs.CutFull
	}
	return cs
}
