// Package webhook pushes delivery outcomes to a single configured endpoint.
// Sends are queued and retried in the background so a slow receiver never
// holds up the print pipeline.
package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cetakin/printd/internal/pipeline"
)

type Event string

const (
	EventDeliverySucceeded Event = "delivery_succeeded"
	EventDeliveryFailed    Event = "delivery_failed"
)

type Payload struct {
	Event     string       `json:"event"`
	Timestamp time.Time    `json:"timestamp"`
	Data      DeliveryData `json:"data"`
	Signature string       `json:"signature,omitempty"`
}

type DeliveryData struct {
	JobID       string        `json:"job_id"`
	JobType     string        `json:"job_type"`
	Destination string        `json:"destination"`
	Delivered   bool          `json:"delivered"`
	Channel     string        `json:"channel,omitempty"`
	Attempts    []AttemptData `json:"attempts"`
}

type AttemptData struct {
	Channel string `json:"channel"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

type Config struct {
	URL         string
	Secret      string
	RetryCount  int
	RetryDelay  time.Duration
	Timeout     time.Duration
	WorkerCount int
	QueueSize   int
}

type task struct {
	payload *Payload
	attempt int
}

type Sender struct {
	url         string
	secret      string
	httpClient  *http.Client
	retryCount  int
	retryDelay  time.Duration
	workerCount int
	queue       chan *task
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

func NewSender(config Config) *Sender {
	if config.RetryCount <= 0 {
		config.RetryCount = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 2
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 100
	}

	return &Sender{
		url:    config.URL,
		secret: config.Secret,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retryCount:  config.RetryCount,
		retryDelay:  config.RetryDelay,
		workerCount: config.WorkerCount,
		queue:       make(chan *task, config.QueueSize),
		stopCh:      make(chan struct{}),
	}
}

// Enabled reports whether an endpoint is configured. A sender without a URL
// accepts notifications and drops them.
func (s *Sender) Enabled() bool {
	return s.url != ""
}

func (s *Sender) Start() {
	if !s.Enabled() {
		return
	}
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *Sender) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// NotifyDelivery satisfies the pipeline's notifier.
func (s *Sender) NotifyDelivery(o *pipeline.Outcome) {
	if !s.Enabled() {
		return
	}

	event := EventDeliveryFailed
	if o.Delivered {
		event = EventDeliverySucceeded
	}

	data := DeliveryData{
		JobID:       o.JobID,
		JobType:     string(o.JobType),
		Destination: o.Destination,
		Delivered:   o.Delivered,
		Channel:     o.Channel,
	}
	for _, a := range o.Attempts {
		data.Attempts = append(data.Attempts, AttemptData{
			Channel: a.Channel,
			Outcome: a.Status.String(),
			Error:   a.Err,
		})
	}

	t := &task{
		payload: &Payload{
			Event:     string(event),
			Timestamp: time.Now(),
			Data:      data,
		},
	}

	select {
	case s.queue <- t:
	default:
		log.Printf("[webhook] queue full, dropping event %s for job %s", event, o.JobID)
	}
}

func (s *Sender) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case t := <-s.queue:
			if err := s.sendWithRetry(t); err != nil {
				log.Printf("[webhook worker %d] failed to send event %s after %d attempts: %v",
					id, t.payload.Event, t.attempt, err)
			}
		}
	}
}

func (s *Sender) sendWithRetry(t *task) error {
	var lastErr error
	for t.attempt < s.retryCount {
		t.attempt++

		err := s.sendRequest(t.payload)
		if err == nil {
			return nil
		}

		lastErr = err

		if isClientError(err) {
			log.Printf("[webhook] client error, not retrying: %v", err)
			return err
		}

		if t.attempt < s.retryCount {
			backoff := s.retryDelay * time.Duration(1<<(t.attempt-1))
			log.Printf("[webhook] retry %d/%d in %v: %v", t.attempt, s.retryCount, backoff, err)

			select {
			case <-s.stopCh:
				return fmt.Errorf("shutdown requested")
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (s *Sender) sendRequest(payload *Payload) error {
	dataBytes, err := json.Marshal(payload.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if s.secret != "" {
		payload.Signature = signPayload(dataBytes, s.secret)
	}

	fullPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.url, bytes.NewReader(fullPayload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", payload.Signature)
	req.Header.Set("X-Webhook-Event", payload.Event)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("http error: %d", resp.StatusCode)
	}

	return nil
}

func signPayload(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func isClientError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "http error: 4")
}
