package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

func TestHTTPEmitter_SignsAndPosts(t *testing.T) {
	var (
		gotBody  []byte
		gotSig   string
		gotEvent string
		gotAuth  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get(SignatureHeader)
		gotEvent = r.Header.Get("X-Taskflow-Event")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithSecret("s3cret"), WithHeader("Authorization", "Bearer hook"))
	err := e.Emit(context.Background(), ports.DomainEvent{
		Event:      "task.created",
		OccurredAt: 1700000000,
		Payload:    map[string]string{"id": "t1"},
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if gotEvent != "task.created" || gotAuth != "Bearer hook" {
		t.Errorf("headers: event=%q auth=%q", gotEvent, gotAuth)
	}
	if gotSig != Sign([]byte("s3cret"), gotBody) {
		t.Errorf("signature %q does not match body", gotSig)
	}
	var ev struct {
		Event   string            `json:"event"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(gotBody, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Event != "task.created" || ev.Payload["id"] != "t1" {
		t.Errorf("body = %s", gotBody)
	}
}

func TestHTTPEmitter_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPEmitter(srv.URL).Emit(context.Background(), ports.DomainEvent{Event: "project.created"})
	if err == nil {
		t.Fatal("expected error for 502")
	}
}

func TestHTTPEmitter_NoSecretNoSignature(t *testing.T) {
	var sig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sig = r.Header.Get(SignatureHeader)
	}))
	defer srv.Close()

	if err := NewHTTPEmitter(srv.URL, WithSecret("")).Emit(context.Background(), ports.DomainEvent{Event: "x"}); err != nil {
		t.Fatal(err)
	}
	if sig != "" {
		t.Errorf("unexpected signature %q", sig)
	}
}
