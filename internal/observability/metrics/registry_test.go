package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSourceFetch(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		ok       bool
		items    int
		duration time.Duration
	}{
		{
			name:     "successful fetch",
			platform: "medium",
			ok:       true,
			items:    12,
			duration: 800 * time.Millisecond,
		},
		{
			name:     "failed fetch",
			platform: "substack",
			ok:       false,
			items:    0,
			duration: 5 * time.Second,
		},
		{
			name:     "empty feed",
			platform: "local",
			ok:       true,
			items:    0,
			duration: time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSourceFetch(tt.platform, tt.ok, tt.items, tt.duration)
			})
		})
	}
}

func TestRecordMergeDuplicates(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{name: "no duplicates", n: 0},
		{name: "some duplicates", n: 3},
		{name: "negative ignored", n: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordMergeDuplicates(tt.n)
			})
		})
	}
}

func TestRecordExcerptFetch(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		duration time.Duration
	}{
		{name: "success", result: "success", duration: 400 * time.Millisecond},
		{name: "failure", result: "failure", duration: 2 * time.Second},
		{name: "skipped", result: "skipped", duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordExcerptFetch(tt.result, tt.duration)
			})
		})
	}
}

func TestRecordSubmission(t *testing.T) {
	tests := []struct {
		name    string
		form    string
		outcome string
	}{
		{name: "contact accepted", form: "contact", outcome: "accepted"},
		{name: "contact rejected", form: "contact", outcome: "rejected"},
		{name: "order failed", form: "order", outcome: "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSubmission(tt.form, tt.outcome)
			})
		})
	}
}

func TestRecordEmailSent(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		ok       bool
		duration time.Duration
	}{
		{name: "notification success", kind: "notification", ok: true, duration: 300 * time.Millisecond},
		{name: "confirmation failure", kind: "confirmation", ok: false, duration: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordEmailSent(tt.kind, tt.ok, tt.duration)
			})
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/articles", "200", 25*time.Millisecond, 0, 2048)
		RecordHTTPRequest("POST", "/contact", "400", 5*time.Millisecond, 512, 128)
	})
}

// counterValue reads the current value of a counter via its protobuf form.
func counterValue(t *testing.T, method, path, status string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, HTTPRequestsTotal.WithLabelValues(method, path, status).Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordHTTPRequestIncrementsCounter(t *testing.T) {
	before := counterValue(t, "GET", "/api/services", "200")

	RecordHTTPRequest("GET", "/api/services", "200", 10*time.Millisecond, 0, 1024)
	RecordHTTPRequest("GET", "/api/services", "200", 12*time.Millisecond, 0, 1024)

	after := counterValue(t, "GET", "/api/services", "200")
	assert.Equal(t, float64(2), after-before)
}

func TestRecordSubmissionIncrementsCounter(t *testing.T) {
	var m dto.Metric
	require.NoError(t, SubmissionsTotal.WithLabelValues("order", "accepted").Write(&m))
	before := m.GetCounter().GetValue()

	RecordSubmission("order", "accepted")

	require.NoError(t, SubmissionsTotal.WithLabelValues("order", "accepted").Write(&m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue()-before)
}
