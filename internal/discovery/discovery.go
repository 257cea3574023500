// Package discovery recognizes compatible thermal printers among the USB
// devices the host can access, by matching descriptors against the
// registry's vendor allowlist.
package discovery

import (
	"fmt"

	"github.com/google/gousb"

	"github.com/cetakin/printd/internal/registry"
)

// Candidate describes a recognized printer without holding it open.
type Candidate struct {
	Vendor      uint16 `json:"vendor_id"`
	Product     uint16 `json:"product_id"`
	VendorName  string `json:"vendor_name"`
	Description string `json:"description"`
}

type Discovery struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Discovery {
	return &Discovery{reg: reg}
}

// ListCandidates walks the USB descriptors and collects allowlisted
// printers. Matching happens inside the enumeration filter, so no device is
// ever opened and no data is transferred.
func (d *Discovery) ListCandidates() ([]Candidate, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()
	return d.listWith(ctx)
}

func (d *Discovery) listWith(ctx *gousb.Context) ([]Candidate, error) {
	var out []Candidate
	_, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		vid := uint16(desc.Vendor)
		if !d.reg.AllowedVendor(vid) {
			return false
		}
		out = append(out, Candidate{
			Vendor:      vid,
			Product:     uint16(desc.Product),
			VendorName:  d.reg.VendorName(vid),
			Description: fmt.Sprintf("%s %04x:%04x", d.reg.VendorName(vid), vid, uint16(desc.Product)),
		})
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate usb devices: %w", err)
	}
	return out, nil
}

// HasAnyCandidate backs the "test connection" affordance; it transfers
// nothing.
func (d *Discovery) HasAnyCandidate() bool {
	candidates, err := d.ListCandidates()
	return err == nil && len(candidates) > 0
}

// OpenFirst opens the first allowlisted device within an existing USB
// context. Extra matches are closed immediately. The caller owns both the
// context and the returned device.
func (d *Discovery) OpenFirst(ctx *gousb.Context) (*gousb.Device, error) {
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return d.reg.AllowedVendor(uint16(desc.Vendor))
	})
	if err != nil && len(devs) == 0 {
		return nil, fmt.Errorf("open usb devices: %w", err)
	}
	if len(devs) == 0 {
		return nil, fmt.Errorf("no compatible printer connected")
	}
	for _, dev := range devs[1:] {
		dev.Close()
	}
	return devs[0], nil
}
