package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	date := NewDate(2024, time.March, 15)

	data, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-03-15"` {
		t.Errorf("Marshal() = %s, want %q", data, "2024-03-15")
	}

	var parsed Date
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !parsed.Equal(date.Time) {
		t.Errorf("round trip = %v, want %v", parsed, date)
	}
}

func TestDateZeroMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Marshal() = %s, want null", data)
	}

	var parsed Date
	if err := json.Unmarshal([]byte("null"), &parsed); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if !parsed.IsZero() {
		t.Errorf("Unmarshal(null) = %v, want zero date", parsed)
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if date.String() != "2024-03-15" {
		t.Errorf("String() = %q, want %q", date.String(), "2024-03-15")
	}

	empty, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate(\"\") error = %v", err)
	}
	if !empty.IsZero() {
		t.Errorf("ParseDate(\"\") = %v, want zero date", empty)
	}

	if _, err := ParseDate("15/03/2024"); err == nil {
		t.Error("ParseDate() expected error for malformed input")
	}
}
