package delivery

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// SpoolerChannel submits the encoded buffer to the host print spooler as an
// opaque raw payload with destination, copy count and media hints.
type SpoolerChannel struct {
	binary string
}

func NewSpoolerChannel(binary string) *SpoolerChannel {
	if binary == "" {
		binary = "lp"
	}
	return &SpoolerChannel{binary: binary}
}

func (c *SpoolerChannel) Name() string {
	return "platform-spooler"
}

func (c *SpoolerChannel) Available(ctx context.Context) bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

func (c *SpoolerChannel) Attempt(ctx context.Context, p *Payload) Result {
	if _, err := exec.LookPath(c.binary); err != nil {
		return unavailable(ErrCapabilityUnavailable)
	}
	if p.EncodeErr != nil {
		return failed(p.EncodeErr)
	}

	args := []string{
		"-d", p.Job.Settings.Destination,
		"-n", strconv.Itoa(p.Job.Settings.Copies),
		"-o", "raw",
		"-o", "media=" + p.Job.Settings.PaperSize,
		"-t", "printd-" + p.Job.ID,
	}

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdin = bytes.NewReader(p.Raw)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return failed(fmt.Errorf("spooler submit: %w: %s", err, bytes.TrimSpace(out)))
	}

	return success()
}
