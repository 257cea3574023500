// Package pipeline drives a print job through the ordered delivery
// channels. One job runs at a time; concurrent submissions are rejected
// outright rather than queued.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cetakin/printd/internal/delivery"
	"github.com/cetakin/printd/internal/document"
	"github.com/cetakin/printd/internal/escpos"
	"github.com/cetakin/printd/internal/job"
)

// ErrBusy is returned when a job arrives while another is in flight. The
// rejected job is not recorded and no channel is attempted for it.
var ErrBusy = errors.New("a print job is already in flight")

// AttemptRecord is the observed result of one channel during a run.
type AttemptRecord struct {
	Channel string
	Status  delivery.Status
	Err     string
}

// Outcome summarizes a full pipeline run for one job.
type Outcome struct {
	JobID       string
	JobType     job.Type
	Destination string
	Delivered   bool
	Channel     string
	Attempts    []AttemptRecord
}

// Recorder persists per-channel attempt results.
type Recorder interface {
	RecordAttempt(jobID string, jobType job.Type, destination, channel, outcome, errMsg string)
}

// Notifier is told about the final outcome of each run.
type Notifier interface {
	NotifyDelivery(o *Outcome)
}

type Printer struct {
	encoder        *escpos.Encoder
	channels       []delivery.Channel
	channelTimeout time.Duration
	recorder       Recorder
	notifier       Notifier

	inFlight atomic.Bool
}

func NewPrinter(encoder *escpos.Encoder, channels []delivery.Channel, channelTimeout time.Duration, recorder Recorder, notifier Notifier) *Printer {
	return &Printer{
		encoder:        encoder,
		channels:       channels,
		channelTimeout: channelTimeout,
		recorder:       recorder,
		notifier:       notifier,
	}
}

// Busy reports whether a job is currently being delivered.
func (p *Printer) Busy() bool {
	return p.inFlight.Load()
}

// Print runs the job through every channel in order until one succeeds.
// Each channel is attempted at most once; a success stops the run and the
// remaining channels are never touched. The returned outcome lists every
// attempt in the order it was made.
func (p *Printer) Print(ctx context.Context, j *job.PrintJob) (*Outcome, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.inFlight.Store(false)

	if err := j.Validate(); err != nil {
		return nil, err
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}

	doc, err := document.Generate(j, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}

	// Encode once; channels that transmit the buffer share the result,
	// the render fallback ignores it.
	raw, encodeErr := p.encoder.Encode(doc.Text, j.Settings)
	payload := &delivery.Payload{
		Job:       j,
		Doc:       doc,
		Raw:       raw,
		EncodeErr: encodeErr,
	}

	out := &Outcome{
		JobID:       j.ID,
		JobType:     j.Type,
		Destination: j.Settings.Destination,
	}

	for _, ch := range p.channels {
		res := p.runChannel(ctx, ch, payload)

		rec := AttemptRecord{Channel: ch.Name(), Status: res.Status}
		if res.Err != nil {
			rec.Err = res.Err.Error()
		}
		out.Attempts = append(out.Attempts, rec)
		p.record(j, rec)

		switch res.Status {
		case delivery.StatusSuccess:
			out.Delivered = true
			out.Channel = ch.Name()
		case delivery.StatusUnavailable:
			log.Printf("[pipeline] job %s: channel %s unavailable", j.ID, ch.Name())
		case delivery.StatusFailed:
			log.Printf("[pipeline] job %s: channel %s failed: %v", j.ID, ch.Name(), res.Err)
		}

		if out.Delivered {
			break
		}
	}

	if out.Delivered {
		log.Printf("[pipeline] job %s delivered via %s", j.ID, out.Channel)
	} else {
		log.Printf("[pipeline] job %s exhausted all %d channels", j.ID, len(out.Attempts))
	}

	if p.notifier != nil {
		p.notifier.NotifyDelivery(out)
	}

	return out, nil
}

// Preview generates the document and encoded buffer for a job without
// touching any channel or the in-flight gate.
func (p *Printer) Preview(j *job.PrintJob) (*document.Document, []byte, error) {
	if err := j.Validate(); err != nil {
		return nil, nil, err
	}

	doc, err := document.Generate(j, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("generate document: %w", err)
	}

	raw, err := p.encoder.Encode(doc.Text, j.Settings)
	if err != nil {
		return nil, nil, err
	}

	return doc, raw, nil
}

// runChannel bounds one channel's availability probe and attempt under a
// shared deadline so a wedged channel cannot stall the whole run.
func (p *Printer) runChannel(ctx context.Context, ch delivery.Channel, payload *delivery.Payload) delivery.Result {
	if p.channelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.channelTimeout)
		defer cancel()
	}

	if !ch.Available(ctx) {
		return delivery.Result{
			Status: delivery.StatusUnavailable,
			Err:    delivery.ErrCapabilityUnavailable,
		}
	}

	return ch.Attempt(ctx, payload)
}

func (p *Printer) record(j *job.PrintJob, rec AttemptRecord) {
	if p.recorder == nil {
		return
	}
	p.recorder.RecordAttempt(j.ID, j.Type, j.Settings.Destination, rec.Channel, rec.Status.String(), rec.Err)
}
