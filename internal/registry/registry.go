// Package registry holds the static printer, paper, font and density
// profiles plus the USB vendor allowlist used to recognize compatible
// hardware. All tables are immutable after construction; an id that does
// not resolve is a configuration error, never a silent default.
package registry

import (
	"errors"
	"sort"
)

var (
	ErrUnknownPrinter = errors.New("unknown printer profile")
	ErrUnknownPaper   = errors.New("unknown paper profile")
	ErrUnknownFont    = errors.New("unknown font profile")
	ErrUnknownDensity = errors.New("unknown density profile")
)

type PrinterProfile struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Width    int        `json:"width"`
	Commands CommandSet `json:"-"`
}

type PaperProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Width int    `json:"width"`
}

type FontProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Command []byte `json:"-"`
}

type DensityProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level byte   `json:"level"`
}

type Registry struct {
	printers  map[string]PrinterProfile
	papers    map[string]PaperProfile
	fonts     map[string]FontProfile
	densities map[string]DensityProfile
	vendors   map[uint16]string
}

func New() *Registry {
	full := escposCommands(true)
	fullOnly := escposCommands(false)

	printers := map[string]PrinterProfile{
		"epson-tm-t82":  {ID: "epson-tm-t82", Name: "EPSON TM-T82", Width: 48, Commands: full},
		"eppos-ep200":   {ID: "eppos-ep200", Name: "EPPOS EP-200", Width: 32, Commands: fullOnly},
		"panda-prj58":   {ID: "panda-prj58", Name: "Panda PRJ-58D", Width: 32, Commands: fullOnly},
		"iware-pos80":   {ID: "iware-pos80", Name: "iWare POS-80", Width: 48, Commands: full},
		"blueprint-m80": {ID: "blueprint-m80", Name: "Blueprint TMU-M80", Width: 48, Commands: full},
	}

	papers := map[string]PaperProfile{
		"58mm":  {ID: "58mm", Name: "Thermal 58mm", Width: 32},
		"76mm":  {ID: "76mm", Name: "Thermal 76mm", Width: 40},
		"80mm":  {ID: "80mm", Name: "Thermal 80mm", Width: 48},
		"112mm": {ID: "112mm", Name: "Thermal 112mm", Width: 64},
	}

	fonts := map[string]FontProfile{
		"font-a": {ID: "font-a", Name: "Font A (12x24)", Command: full.FontA},
		"font-b": {ID: "font-b", Name: "Font B (9x17)", Command: full.FontB},
		"font-c": {ID: "font-c", Name: "Font C (9x24)", Command: full.FontC},
	}

	densities := map[string]DensityProfile{
		"light":  {ID: "light", Name: "Light", Level: 4},
		"normal": {ID: "normal", Name: "Normal", Level: 8},
		"dark":   {ID: "dark", Name: "Dark", Level: 12},
	}

	// Vendor ids of the supported thermal printer families.
	vendors := map[uint16]string{
		0x04B8: "Seiko Epson",
		0x0519: "Star Micronics",
		0x0416: "Winbond Electronics",
		0x0483: "STMicroelectronics",
		0x6868: "Zjiang",
	}

	return &Registry{
		printers:  printers,
		papers:    papers,
		fonts:     fonts,
		densities: densities,
		vendors:   vendors,
	}
}

func (r *Registry) Printer(id string) (PrinterProfile, error) {
	p, ok := r.printers[id]
	if !ok {
		return PrinterProfile{}, ErrUnknownPrinter
	}
	return p, nil
}

func (r *Registry) Paper(id string) (PaperProfile, error) {
	p, ok := r.papers[id]
	if !ok {
		return PaperProfile{}, ErrUnknownPaper
	}
	return p, nil
}

func (r *Registry) Font(id string) (FontProfile, error) {
	f, ok := r.fonts[id]
	if !ok {
		return FontProfile{}, ErrUnknownFont
	}
	return f, nil
}

func (r *Registry) Density(id string) (DensityProfile, error) {
	d, ok := r.densities[id]
	if !ok {
		return DensityProfile{}, ErrUnknownDensity
	}
	return d, nil
}

func (r *Registry) Printers() []PrinterProfile {
	out := make([]PrinterProfile, 0, len(r.printers))
	for _, p := range r.printers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Papers() []PaperProfile {
	out := make([]PaperProfile, 0, len(r.papers))
	for _, p := range r.papers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Width < out[j].Width })
	return out
}

func (r *Registry) Fonts() []FontProfile {
	out := make([]FontProfile, 0, len(r.fonts))
	for _, f := range r.fonts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Densities() []DensityProfile {
	out := make([]DensityProfile, 0, len(r.densities))
	for _, d := range r.densities {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// AllowedVendor reports whether a USB vendor id belongs to a supported
// thermal printer family.
func (r *Registry) AllowedVendor(vid uint16) bool {
	_, ok := r.vendors[vid]
	return ok
}

func (r *Registry) VendorName(vid uint16) string {
	return r.vendors[vid]
}
