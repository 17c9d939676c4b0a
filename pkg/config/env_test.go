package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("CATALOGUE_PATH", "testdata/catalogue.yaml")
	if got := GetEnvString("CATALOGUE_PATH", "content/catalogue.yaml"); got != "testdata/catalogue.yaml" {
		t.Errorf("GetEnvString() = %q, want %q", got, "testdata/catalogue.yaml")
	}

	t.Setenv("CATALOGUE_PATH", "")
	if got := GetEnvString("CATALOGUE_PATH", "content/catalogue.yaml"); got != "content/catalogue.yaml" {
		t.Errorf("GetEnvString() = %q, want default", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "10", want: 10},
		{name: "unset uses default", value: "", want: 5},
		{name: "garbage uses default", value: "five", want: 5},
		{name: "negative parses", value: "-1", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SUBMIT_RATE_LIMIT", tt.value)
			if got := GetEnvInt("SUBMIT_RATE_LIMIT", 5); got != tt.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "T", want: true},
		{value: "false", want: false},
		{value: "0", want: false},
		{value: "", want: true},    // default
		{value: "yes", want: true}, // invalid, default
	}

	for _, tt := range tests {
		t.Setenv("EXCERPT_FETCH_ENABLED", tt.value)
		if got := GetEnvBool("EXCERPT_FETCH_ENABLED", true); got != tt.want {
			t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "15s", want: 15 * time.Second},
		{value: "1m30s", want: 90 * time.Second},
		{value: "", want: 10 * time.Second},
		{value: "soon", want: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Setenv("SOURCE_FETCH_TIMEOUT", tt.value)
		if got := GetEnvDuration("SOURCE_FETCH_TIMEOUT", 10*time.Second); got != tt.want {
			t.Errorf("GetEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestGetEnvStringList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "comma separated", value: "10.0.0.0/8,192.168.0.1", want: []string{"10.0.0.0/8", "192.168.0.1"}},
		{name: "entries trimmed", value: " 10.0.0.1 , 10.0.0.2 ", want: []string{"10.0.0.1", "10.0.0.2"}},
		{name: "empty entries dropped", value: "10.0.0.1,,", want: []string{"10.0.0.1"}},
		{name: "unset uses default", value: "", want: nil},
		{name: "only commas uses default", value: ",,,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", tt.value)
			got := GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GetEnvStringList(%q) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}
