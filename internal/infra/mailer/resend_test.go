package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testMessage() Message {
	return Message{
		From:    "Portfolio <noreply@example.com>",
		To:      "owner@example.com",
		ReplyTo: "client@example.com",
		Subject: "New inquiry from Alice",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
	}
}

func TestResendMailer_buildPayload(t *testing.T) {
	msg := testMessage()
	msg.Attachments = []Attachment{
		{Filename: "brief.pdf", Content: []byte("pdf-bytes")},
	}

	payload := buildPayload(msg)

	if payload.From != msg.From {
		t.Errorf("from = %q, want %q", payload.From, msg.From)
	}
	if len(payload.To) != 1 || payload.To[0] != msg.To {
		t.Errorf("to = %v, want [%q]", payload.To, msg.To)
	}
	if payload.ReplyTo != msg.ReplyTo {
		t.Errorf("reply_to = %q, want %q", payload.ReplyTo, msg.ReplyTo)
	}
	if len(payload.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(payload.Attachments))
	}

	wantContent := base64.StdEncoding.EncodeToString([]byte("pdf-bytes"))
	if payload.Attachments[0].Content != wantContent {
		t.Errorf("attachment content = %q, want base64 %q", payload.Attachments[0].Content, wantContent)
	}
	if payload.Attachments[0].Filename != "brief.pdf" {
		t.Errorf("attachment filename = %q, want %q", payload.Attachments[0].Filename, "brief.pdf")
	}
}

func TestResendMailer_Send_Success(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var payload resendPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Subject != "New inquiry from Alice" {
			t.Errorf("subject = %q, want %q", payload.Subject, "New inquiry from Alice")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resendResponse{ID: "msg_123"})
	}))
	defer server.Close()

	m := NewResendMailer(ResendConfig{
		APIKey:   "re_test_key",
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	})

	result, err := m.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send() error = %v, want nil", err)
	}
	if result.ID != "msg_123" {
		t.Errorf("result.ID = %q, want %q", result.ID, "msg_123")
	}
	if gotAuth != "Bearer re_test_key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestResendMailer_Send_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"Invalid from address"}`))
	}))
	defer server.Close()

	m := NewResendMailer(ResendConfig{
		APIKey:   "re_test_key",
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	})

	_, err := m.Send(context.Background(), testMessage())
	if err == nil {
		t.Fatal("Send() error = nil, want client error")
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error type = %T, want *ClientError", err)
	}
	if clientErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", clientErr.StatusCode, http.StatusUnprocessableEntity)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("API calls = %d, want 1 (4xx must not be retried)", got)
	}
}

func TestResendMailer_Send_ServerErrorRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(resendResponse{ID: "msg_retry"})
	}))
	defer server.Close()

	m := NewResendMailer(ResendConfig{
		APIKey:   "re_test_key",
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	})

	result, err := m.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send() error = %v, want success after retry", err)
	}
	if result.ID != "msg_retry" {
		t.Errorf("result.ID = %q, want %q", result.ID, "msg_retry")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("API calls = %d, want 2", got)
	}
}

func TestResendMailer_Send_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := NewResendMailer(ResendConfig{
		APIKey:   "re_test_key",
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Send(ctx, testMessage()); err == nil {
		t.Fatal("Send() error = nil, want context error")
	}
}

func TestExtractRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		header string
		want   time.Duration
	}{
		{name: "from json body", body: `{"retry_after": 2.5}`, want: 2500 * time.Millisecond},
		{name: "from header", body: `{}`, header: "3", want: 3 * time.Second},
		{name: "default", body: `{}`, want: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := extractRetryAfter(resp, []byte(tt.body)); got != tt.want {
				t.Errorf("extractRetryAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}
