package faceclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["image"] == "" {
			t.Error("image missing from request body")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"detected":       true,
			"embedding":      []float64{0.1, 0.2, 0.3},
			"faces_detected": 1,
		})
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	res, err := client.Extract(context.Background(), "data:image/jpeg;base64,ZmFrZQ==")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Embedding) != 3 || res.FacesDetected != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestExtractNoFace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"detected": false})
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Extract(context.Background(), "data:image/jpeg;base64,ZmFrZQ==")
	if !errors.Is(err, ErrNoFaceDetected) {
		t.Fatalf("expected ErrNoFaceDetected, got %v", err)
	}
}

func TestExtractUnprocessableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no face found", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.Extract(context.Background(), "data:image/jpeg;base64,ZmFrZQ==")
	if !errors.Is(err, ErrNoFaceDetected) {
		t.Fatalf("expected ErrNoFaceDetected for 422, got %v", err)
	}
}

func TestExtractServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	if _, err := client.Extract(context.Background(), "x"); err == nil {
		t.Fatal("expected error from 500 response")
	}
}

func TestExtractUnreachable(t *testing.T) {
	// Port 0 is never routable.
	client := New("http://127.0.0.1:0", 200*time.Millisecond)
	_, err := client.Extract(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
