package delivery

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/gousb"

	"github.com/cetakin/printd/internal/discovery"
)

// USBChannel writes the encoded command buffer straight to a connected
// thermal printer over a bulk OUT endpoint.
type USBChannel struct {
	disc        *discovery.Discovery
	chunkSize   int
	settleDelay time.Duration
}

func NewUSBChannel(disc *discovery.Discovery, chunkSize int, settleDelay time.Duration) *USBChannel {
	// A non-positive chunk size would split the buffer into nothing and
	// report a successful transfer of zero bytes.
	if chunkSize < 1 {
		chunkSize = 64
	}
	return &USBChannel{
		disc:        disc,
		chunkSize:   chunkSize,
		settleDelay: settleDelay,
	}
}

func (c *USBChannel) Name() string {
	return "direct-device"
}

func (c *USBChannel) Available(ctx context.Context) bool {
	return c.disc.HasAnyCandidate()
}

func (c *USBChannel) Attempt(ctx context.Context, p *Payload) Result {
	if p.EncodeErr != nil {
		return failed(p.EncodeErr)
	}

	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	dev, err := c.disc.OpenFirst(usbCtx)
	if err != nil {
		return failed(fmt.Errorf("%w: %v", ErrDeviceAccess, err))
	}
	defer dev.Close()

	// The kernel usually has usblp bound to the printer.
	if err := dev.SetAutoDetach(true); err != nil {
		log.Printf("[usb] auto-detach not supported: %v", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		return failed(fmt.Errorf("%w: select configuration: %v", ErrDeviceAccess, err))
	}
	defer cfg.Close()

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		return failed(fmt.Errorf("%w: claim interface: %v", ErrDeviceAccess, err))
	}
	defer intf.Close()

	ep, err := outEndpoint(intf)
	if err != nil {
		return failed(fmt.Errorf("%w: %v", ErrDeviceAccess, err))
	}

	for n := 0; n < p.Job.Settings.Copies; n++ {
		if err := c.transfer(ctx, ep, p.Raw); err != nil {
			return failed(err)
		}
	}

	// Let the device drain its buffer before the handle goes away.
	time.Sleep(c.settleDelay)

	return success()
}

// transfer sends the buffer in fixed-size chunks, one in-flight transfer at
// a time, to respect the device's small receive buffer.
func (c *USBChannel) transfer(ctx context.Context, ep *gousb.OutEndpoint, raw []byte) error {
	for i, chunk := range splitChunks(raw, c.chunkSize) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrTransfer, err)
		}
		if _, err := ep.WriteContext(ctx, chunk); err != nil {
			return fmt.Errorf("%w: chunk %d: %v", ErrTransfer, i, err)
		}
	}
	return nil
}

func outEndpoint(intf *gousb.Interface) (*gousb.OutEndpoint, error) {
	for _, desc := range intf.Setting.Endpoints {
		if desc.Direction == gousb.EndpointDirectionOut {
			return intf.OutEndpoint(desc.Number)
		}
	}
	return nil, fmt.Errorf("no bulk OUT endpoint on interface 0")
}
