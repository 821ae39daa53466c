package id_test

import (
	"testing"

	"github.com/kris48k/gcloud-node/id"
)

func TestNew_GeneratesPrefixedIDs(t *testing.T) {
	jobID := id.NewJobID()
	if jobID.Prefix() != id.PrefixJob {
		t.Errorf("Prefix() = %q, want %q", jobID.Prefix(), id.PrefixJob)
	}
	if jobID.IsNil() {
		t.Error("NewJobID returned the nil ID")
	}

	reqID := id.NewRequestID()
	if reqID.Prefix() != id.PrefixRequest {
		t.Errorf("Prefix() = %q, want %q", reqID.Prefix(), id.PrefixRequest)
	}
}

func TestNew_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		s := id.NewRequestID().String()
		if seen[s] {
			t.Fatalf("duplicate ID generated: %s", s)
		}
		seen[s] = true
	}
}

func TestParse_RoundTrip(t *testing.T) {
	original := id.NewJobID()

	parsed, err := id.Parse(original.String())
	if err != nil {
		t.Fatalf("Parse(%q): %v", original.String(), err)
	}
	if parsed.String() != original.String() {
		t.Errorf("round trip = %q, want %q", parsed.String(), original.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not a typeid",
		"job_!!!invalid!!!",
	}
	for _, input := range tests {
		if _, err := id.Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestParseWithPrefix_RejectsMismatch(t *testing.T) {
	jobID := id.NewJobID()

	if _, err := id.ParseRequestID(jobID.String()); err == nil {
		t.Errorf("ParseRequestID(%q) succeeded, want prefix mismatch error", jobID.String())
	}
	if _, err := id.ParseJobID(jobID.String()); err != nil {
		t.Errorf("ParseJobID(%q): %v", jobID.String(), err)
	}
}

func TestNil_Behavior(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
	if id.Nil.Prefix() != "" {
		t.Errorf("Nil.Prefix() = %q, want empty", id.Nil.Prefix())
	}
}

func TestTextMarshaling(t *testing.T) {
	original := id.NewRequestID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", data, err)
	}
	if decoded.String() != original.String() {
		t.Errorf("decoded = %q, want %q", decoded.String(), original.String())
	}

	// Empty text unmarshals to Nil.
	var empty id.ID
	if err := empty.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !empty.IsNil() {
		t.Error("UnmarshalText(nil) should produce the Nil ID")
	}
}
