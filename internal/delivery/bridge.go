package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BridgeChannel hands the encoded buffer to an external desktop print
// bridge over HTTP. The bridge owns the actual device from there on.
type BridgeChannel struct {
	url    string
	client *http.Client
}

type bridgeRequest struct {
	JobID       string `json:"job_id"`
	Destination string `json:"destination"`
	Copies      int    `json:"copies"`
	Payload     string `json:"payload"`
}

func NewBridgeChannel(url string, timeout time.Duration) *BridgeChannel {
	return &BridgeChannel{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *BridgeChannel) Name() string {
	return "host-bridge"
}

func (c *BridgeChannel) Available(ctx context.Context) bool {
	return c.url != ""
}

func (c *BridgeChannel) Attempt(ctx context.Context, p *Payload) Result {
	if c.url == "" {
		return unavailable(ErrCapabilityUnavailable)
	}
	if p.EncodeErr != nil {
		return failed(p.EncodeErr)
	}

	body, err := json.Marshal(bridgeRequest{
		JobID:       p.Job.ID,
		Destination: p.Job.Settings.Destination,
		Copies:      p.Job.Settings.Copies,
		Payload:     base64.StdEncoding.EncodeToString(p.Raw),
	})
	if err != nil {
		return failed(fmt.Errorf("marshal bridge request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return failed(fmt.Errorf("build bridge request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return failed(fmt.Errorf("bridge unreachable: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return failed(fmt.Errorf("bridge rejected job: %d %s", resp.StatusCode, string(msg)))
	}

	return success()
}
