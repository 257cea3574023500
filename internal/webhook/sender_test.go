package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cetakin/printd/internal/delivery"
	"github.com/cetakin/printd/internal/pipeline"
)

func TestSignPayload(t *testing.T) {
	payload := []byte(`{"job_id":"j1"}`)
	secret := "s3cret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, signPayload(payload, secret))
}

func TestSenderDisabledWithoutURL(t *testing.T) {
	s := NewSender(Config{})
	assert.False(t, s.Enabled())

	// A notification on a disabled sender is dropped silently.
	s.NotifyDelivery(&pipeline.Outcome{JobID: "j1"})
	assert.Empty(t, s.queue)
}

func TestNotifyDelivery(t *testing.T) {
	received := make(chan *http.Request, 1)
	bodies := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- r
		bodies <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(Config{URL: srv.URL, Secret: "s3cret"})
	s.Start()
	defer s.Stop()

	s.NotifyDelivery(&pipeline.Outcome{
		JobID:       "job-1",
		JobType:     "receipt",
		Destination: "epson-tm-t82",
		Delivered:   true,
		Channel:     "host-bridge",
		Attempts: []pipeline.AttemptRecord{
			{Channel: "direct-device", Status: delivery.StatusUnavailable, Err: "channel capability unavailable"},
			{Channel: "host-bridge", Status: delivery.StatusSuccess},
		},
	})

	select {
	case r := <-received:
		assert.Equal(t, string(EventDeliverySucceeded), r.Header.Get("X-Webhook-Event"))
		assert.NotEmpty(t, r.Header.Get("X-Webhook-Signature"))
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was never delivered")
	}

	var payload Payload
	require.NoError(t, json.Unmarshal(<-bodies, &payload))
	assert.Equal(t, "job-1", payload.Data.JobID)
	assert.True(t, payload.Data.Delivered)
	assert.Equal(t, "host-bridge", payload.Data.Channel)
	require.Len(t, payload.Data.Attempts, 2)
	assert.Equal(t, "unavailable", payload.Data.Attempts[0].Outcome)

	// The signature covers the data object exactly.
	dataBytes, err := json.Marshal(payload.Data)
	require.NoError(t, err)
	assert.Equal(t, signPayload(dataBytes, "s3cret"), payload.Signature)
}

func TestFailedDeliveryEvent(t *testing.T) {
	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Get("X-Webhook-Event")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(Config{URL: srv.URL, Secret: "s3cret"})
	s.Start()
	defer s.Stop()

	s.NotifyDelivery(&pipeline.Outcome{JobID: "job-2", Delivered: false})

	select {
	case event := <-received:
		assert.Equal(t, string(EventDeliveryFailed), event)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was never delivered")
	}
}

func TestClientErrorNotRetried(t *testing.T) {
	var hits int
	done := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		done <- struct{}{}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewSender(Config{URL: srv.URL, Secret: "s3cret", RetryDelay: 10 * time.Millisecond})
	s.Start()

	s.NotifyDelivery(&pipeline.Outcome{JobID: "job-3"})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was never delivered")
	}
	s.Stop()

	assert.Equal(t, 1, hits, "4xx responses must not be retried")
}
