package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWhatsApp_SendText(t *testing.T) {
	var (
		gotPath    string
		gotAPIKey  string
		gotPayload wahaSendText
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	wa := NewWhatsApp(ts.URL, "secret", "default", "491700000000@c.us")
	if wa == nil {
		t.Fatal("expected whatsapp client")
	}
	if err := wa.Send(context.Background(), "Health WARN on host1", "WARN details"); err != nil {
		t.Fatalf("send err: %v", err)
	}

	if gotPath != "/api/sendText" {
		t.Fatalf("path = %q, want /api/sendText", gotPath)
	}
	if gotAPIKey != "secret" {
		t.Fatalf("api key = %q", gotAPIKey)
	}
	if gotPayload.Session != "default" || gotPayload.ChatID != "491700000000@c.us" {
		t.Fatalf("payload routing wrong: %+v", gotPayload)
	}
	if !strings.Contains(gotPayload.Text, "WARN details") {
		t.Fatalf("payload text wrong: %q", gotPayload.Text)
	}
}

func TestWhatsApp_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no session", 422)
	}))
	defer ts.Close()

	wa := NewWhatsApp(ts.URL, "", "", "chat@c.us")
	if err := wa.Send(context.Background(), "T", "X"); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestWhatsApp_DisabledWithoutChat(t *testing.T) {
	if NewWhatsApp("http://localhost:3000", "k", "default", "") != nil {
		t.Fatal("expected nil client when chat id missing")
	}
}
