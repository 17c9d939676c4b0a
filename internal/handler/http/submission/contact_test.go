package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-backend/internal/infra/mailer"
	"portfolio-backend/internal/usecase/submit"
)

type stubMailer struct {
	sent []mailer.Message
	err  error
}

func (s *stubMailer) Send(_ context.Context, msg mailer.Message) (mailer.SendResult, error) {
	s.sent = append(s.sent, msg)
	if s.err != nil {
		return mailer.SendResult{}, s.err
	}
	return mailer.SendResult{ID: "msg-" + msg.To}, nil
}

func newContactHandler(t *testing.T, m mailer.Mailer) ContactHandler {
	t.Helper()
	renderer, err := submit.NewRenderer("Test Site")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	svc := submit.NewService(m, renderer, submit.Config{
		From:       "Test Site <noreply@example.com>",
		OwnerEmail: "owner@example.com",
		SiteName:   "Test Site",
	})
	return ContactHandler{Svc: svc, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func validContactBody() map[string]string {
	return map[string]string{
		"name":        "Taro Yamada",
		"email":       "taro@example.com",
		"projectType": "Web Development",
		"message":     "I would like to discuss a new project with you.",
	}
}

func postContact(t *testing.T, h ContactHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactHandlerSuccess(t *testing.T) {
	m := &stubMailer{}
	h := newContactHandler(t, m)

	rec := postContact(t, h, validContactBody())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.MessageID == "" {
		t.Errorf("response = %+v, want success with messageId", resp)
	}
	if len(m.sent) != 2 {
		t.Errorf("sent = %d messages, want notification + confirmation", len(m.sent))
	}
}

func TestContactHandlerValidationErrors(t *testing.T) {
	m := &stubMailer{}
	h := newContactHandler(t, m)

	rec := postContact(t, h, map[string]string{
		"name":  "",
		"email": "not-an-email",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Errors["name"] != "Name is required" {
		t.Errorf("errors[name] = %q", resp.Errors["name"])
	}
	if resp.Errors["email"] != "Please enter a valid email address" {
		t.Errorf("errors[email] = %q", resp.Errors["email"])
	}
	if len(m.sent) != 0 {
		t.Errorf("sent = %d messages, want none on rejection", len(m.sent))
	}
}

func TestContactHandlerDispatchFailure(t *testing.T) {
	m := &stubMailer{err: errors.New("provider exploded: re_secretsecretsecret")}
	h := newContactHandler(t, m)

	rec := postContact(t, h, validContactBody())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("Success = true, want false")
	}
	// Provider details never reach the client.
	if strings.Contains(resp.Error, "provider") || strings.Contains(resp.Error, "re_") {
		t.Errorf("Error = %q leaks provider detail", resp.Error)
	}
}

func TestContactHandlerMalformedBody(t *testing.T) {
	h := newContactHandler(t, &stubMailer{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
