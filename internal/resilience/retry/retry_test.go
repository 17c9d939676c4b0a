package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff(t *testing.T) {
	serverErr := &HTTPError{StatusCode: 500, Message: "Server Error"}
	clientErr := &HTTPError{StatusCode: 400, Message: "Bad Request"}

	tests := []struct {
		name         string
		failUntil    int // attempts that fail before success; -1 fails forever
		err          error
		wantErr      bool
		wantAttempts int
	}{
		{name: "first attempt succeeds", failUntil: 0, wantAttempts: 1},
		{name: "succeeds on third attempt", failUntil: 2, err: serverErr, wantAttempts: 3},
		{name: "budget exhausted", failUntil: -1, err: serverErr, wantErr: true, wantAttempts: 3},
		{name: "non-retryable stops immediately", failUntil: -1, err: clientErr, wantErr: true, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := WithBackoff(context.Background(), fastConfig(), func() error {
				attempts++
				if tt.failUntil < 0 || attempts <= tt.failUntil {
					return tt.err
				}
				return nil
			})

			if tt.wantErr && err == nil {
				t.Fatal("WithBackoff() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("WithBackoff() error = %v", err)
			}
			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
		})
	}
}

func TestWithBackoffWrapsLastError(t *testing.T) {
	testErr := &HTTPError{StatusCode: 503, Message: "Service Unavailable"}
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		return testErr
	})

	if !errors.Is(err, testErr) {
		t.Errorf("WithBackoff() error = %v, want wrapped %v", err, testErr)
	}
}

func TestWithBackoffContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := WithBackoff(ctx, fastConfig(), func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return &HTTPError{StatusCode: 500, Message: "Server Error"}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WithBackoff() error = %v, want context.Canceled", err)
	}
	if attempts < 2 {
		t.Errorf("attempts = %d, want at least 2 before cancel", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil", err: nil, retryable: false},
		{name: "context canceled", err: context.Canceled, retryable: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, retryable: false},
		{name: "http 500", err: &HTTPError{StatusCode: 500}, retryable: true},
		{name: "http 502", err: &HTTPError{StatusCode: 502}, retryable: true},
		{name: "http 429", err: &HTTPError{StatusCode: 429}, retryable: true},
		{name: "http 408", err: &HTTPError{StatusCode: 408}, retryable: true},
		{name: "http 400", err: &HTTPError{StatusCode: 400}, retryable: false},
		{name: "http 404", err: &HTTPError{StatusCode: 404}, retryable: false},
		{name: "connection refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "connection reset", err: syscall.ECONNRESET, retryable: true},
		{name: "network unreachable", err: syscall.ENETUNREACH, retryable: true},
		{name: "plain error", err: errors.New("selector not found"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestConfigPresets(t *testing.T) {
	if got := DefaultConfig().MaxAttempts; got != 3 {
		t.Errorf("DefaultConfig().MaxAttempts = %d, want 3", got)
	}
	if got := FeedFetchConfig().MaxAttempts; got != 5 {
		t.Errorf("FeedFetchConfig().MaxAttempts = %d, want 5", got)
	}
	if got := WebScraperConfig().MaxDelay; got != 10*time.Second {
		t.Errorf("WebScraperConfig().MaxDelay = %v, want 10s", got)
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 500, Message: "Internal Server Error"}
	if got := err.Error(); got != "HTTP 500: Internal Server Error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAddJitter(t *testing.T) {
	duration := 100 * time.Millisecond

	seen := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		got := addJitter(duration, 0.2)
		if got < duration || got > time.Duration(float64(duration)*1.2) {
			t.Errorf("addJitter() = %v, want within [%v, %v]", got, duration, time.Duration(float64(duration)*1.2))
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("addJitter() produced no variation across runs")
	}

	if got := addJitter(duration, 0); got != duration {
		t.Errorf("addJitter() with zero fraction = %v, want %v", got, duration)
	}
}
