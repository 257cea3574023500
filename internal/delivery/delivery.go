// Package delivery implements the four independent channels a print job
// can travel: direct USB device, desktop print bridge, host spooler and
// headless-browser render fallback. Each channel reports an explicit
// result; failures never escape a channel.
package delivery

import (
	"context"
	"errors"

	"github.com/cetakin/printd/internal/document"
	"github.com/cetakin/printd/internal/job"
)

var (
	// ErrCapabilityUnavailable means the host does not expose what the
	// channel needs (no device, no bridge, no spooler binary).
	ErrCapabilityUnavailable = errors.New("channel capability unavailable")

	// ErrDeviceAccess covers open/claim/endpoint failures on a device
	// that was found.
	ErrDeviceAccess = errors.New("device access failed")

	// ErrTransfer marks a chunk transfer failing mid-stream. The rest of
	// the chunk sequence is abandoned; chunks are not retried.
	ErrTransfer = errors.New("transfer failed")
)

type Status int

const (
	StatusSuccess Status = iota
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

type Result struct {
	Status Status
	Err    error
}

func success() Result {
	return Result{Status: StatusSuccess}
}

func unavailable(err error) Result {
	return Result{Status: StatusUnavailable, Err: err}
}

func failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// Payload carries one job through the pipeline. Raw is the encoded device
// buffer; it is nil when encoding failed, in which case EncodeErr explains
// why and only channels that do not encode can still succeed.
type Payload struct {
	Job       *job.PrintJob
	Doc       *document.Document
	Raw       []byte
	EncodeErr error
}

// Channel is one delivery mechanism. The pipeline holds an ordered list of
// these and is agnostic to how each determines availability.
type Channel interface {
	Name() string
	Available(ctx context.Context) bool
	Attempt(ctx context.Context, p *Payload) Result
}

// splitChunks cuts buf into fixed-size pieces; the final piece holds the
// remainder. Chunks alias the original buffer.
func splitChunks(buf []byte, size int) [][]byte {
	if size < 1 || len(buf) == 0 {
		return nil
	}
	chunks := make([][]byte, 0, (len(buf)+size-1)/size)
	for start := 0; start < len(buf); start += size {
		end := start + size
		if end > len(buf) {
			end = len(buf)
		}
		chunks = append(chunks, buf[start:end])
	}
	return chunks
}
