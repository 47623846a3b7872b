// Package faceclient talks to the external face inference server, which
// does the heavy lifting of detection and embedding extraction. The server
// is a black box reached over HTTP; it may be down or report that no face
// was found, and callers must handle both.
package faceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoFaceDetected is returned when the inference server processed the
// image but found no usable face in it.
var ErrNoFaceDetected = errors.New("no face detected in image")

// ErrUnavailable wraps transport-level failures reaching the server.
var ErrUnavailable = errors.New("face service unavailable")

// ExtractResult is the embedding extracted from one image.
type ExtractResult struct {
	Embedding     []float64
	FacesDetected int
}

// Client calls the face inference server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL. A zero timeout falls back
// to 30 seconds; embedding extraction is slow on cold models.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Extract sends a base64 data-URL image and returns the face embedding.
// A response without an embedding is reported as ErrNoFaceDetected, not as
// a zero-length vector.
func (c *Client) Extract(ctx context.Context, image string) (*ExtractResult, error) {
	if image == "" {
		return nil, fmt.Errorf("image required")
	}

	body, _ := json.Marshal(map[string]string{"image": image})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, ErrNoFaceDetected
	}
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("face service error %s: %s", resp.Status, string(msg))
	}

	var out struct {
		Detected      bool      `json:"detected"`
		Embedding     []float64 `json:"embedding"`
		FacesDetected int       `json:"faces_detected"`
		Error         string    `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode face service response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("face service: %s", out.Error)
	}
	if !out.Detected || len(out.Embedding) == 0 {
		return nil, ErrNoFaceDetected
	}

	return &ExtractResult{
		Embedding:     out.Embedding,
		FacesDetected: out.FacesDetected,
	}, nil
}

// Health checks whether the inference server is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("face service unhealthy: %s", resp.Status)
	}
	return nil
}
