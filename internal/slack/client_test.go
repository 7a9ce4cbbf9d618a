package slack

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestClientSend(t *testing.T) {
	t.Parallel()

	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	if err := client.Send(context.Background(), `{"blocks":[]}`); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotBody != `{"blocks":[]}` {
		t.Fatalf("body = %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
}

func TestClientSendRejectsNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	if err := client.Send(context.Background(), "{}"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
