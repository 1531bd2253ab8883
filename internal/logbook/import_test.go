package logbook

import (
	"encoding/json"
	"strings"
	"testing"
)

// decode parses a JSON literal the way the import handler does.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("test payload does not parse: %v", err)
	}
	return data
}

func validPayload(contactJSON string) string {
	return `{
		"metadata": {"appName": "LZ Radio", "schemaVersion": 1, "exportDate": "2026-01-01T00:00:00Z", "contactCount": 1},
		"contacts": [` + contactJSON + `]
	}`
}

const validContact = `{
	"baseCallsign": "W1ABC",
	"date": "2026-05-20",
	"time": "14:30:00",
	"frequency": 14.205,
	"mode": "SSB"
}`

func TestValidateImportAcceptsMinimalContact(t *testing.T) {
	result := ValidateImport(decode(t, validPayload(validContact)), "")
	if !result.Valid {
		t.Fatalf("valid payload rejected: %s", result.Error)
	}
	if len(result.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(result.Contacts))
	}

	c := result.Contacts[0]
	if c.BaseCallsign != "W1ABC" || c.Frequency != 14.205 || c.Mode != "SSB" {
		t.Errorf("normalized contact = %+v", c)
	}
	if c.Prefix != nil || c.Power != nil || c.QSLSent || c.Remarks != "" {
		t.Errorf("optional defaults wrong: %+v", c)
	}
}

func TestValidateImportStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "not an object",
			payload: `[1, 2, 3]`,
			wantErr: "Expected an object",
		},
		{
			name:    "missing metadata",
			payload: `{"contacts": []}`,
			wantErr: `Missing or invalid "metadata"`,
		},
		{
			name:    "foreign app",
			payload: `{"metadata": {"appName": "Other Logger", "schemaVersion": 1}, "contacts": []}`,
			wantErr: "was not exported from LZ Radio",
		},
		{
			name:    "missing schema version",
			payload: `{"metadata": {"appName": "LZ Radio"}, "contacts": []}`,
			wantErr: "Missing or invalid schema version",
		},
		{
			name:    "unsupported schema version",
			payload: `{"metadata": {"appName": "LZ Radio", "schemaVersion": 2}, "contacts": []}`,
			wantErr: "Unsupported schema version 2",
		},
		{
			name:    "contacts not an array",
			payload: `{"metadata": {"appName": "LZ Radio", "schemaVersion": 1}, "contacts": {}}`,
			wantErr: `"contacts" must be an array`,
		},
		{
			name:    "empty contacts",
			payload: `{"metadata": {"appName": "LZ Radio", "schemaVersion": 1}, "contacts": []}`,
			wantErr: "No contacts found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateImport(decode(t, tt.payload), "")
			if result.Valid {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(result.Error, tt.wantErr) {
				t.Errorf("error %q does not contain %q", result.Error, tt.wantErr)
			}
		})
	}
}

func TestValidateImportContactErrors(t *testing.T) {
	tests := []struct {
		name    string
		contact string
		wantErr string
	}{
		{
			name:    "missing required field",
			contact: `{"date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": "CW"}`,
			wantErr: "index 0 is missing required field: baseCallsign",
		},
		{
			name:    "wrong type for frequency",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": "14.2", "mode": "CW"}`,
			wantErr: "invalid type for frequency. Expected number, got string",
		},
		{
			name:    "empty callsign",
			contact: `{"baseCallsign": "   ", "date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": "CW"}`,
			wantErr: "has empty baseCallsign",
		},
		{
			name:    "bad date format",
			contact: `{"baseCallsign": "W1ABC", "date": "20/05/2026", "time": "14:30", "frequency": 14.2, "mode": "CW"}`,
			wantErr: "invalid date format",
		},
		{
			name:    "bad time format",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "2pm", "frequency": 14.2, "mode": "CW"}`,
			wantErr: "invalid time format",
		},
		{
			name:    "zero frequency",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": 0, "mode": "CW"}`,
			wantErr: "invalid frequency",
		},
		{
			name:    "blank mode",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": " "}`,
			wantErr: "has empty mode",
		},
		{
			name:    "negative power",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": "CW", "power": -5}`,
			wantErr: "invalid power",
		},
		{
			name:    "zero power is invalid, not defaultable",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": "CW", "power": 0}`,
			wantErr: "invalid power",
		},
		{
			name:    "wrong type for qslSent",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": "CW", "qslSent": "yes"}`,
			wantErr: "invalid type for qslSent",
		},
		{
			name:    "wrong type for prefix",
			contact: `{"baseCallsign": "W1ABC", "date": "2026-05-20", "time": "14:30", "frequency": 14.2, "mode": "CW", "prefix": 7}`,
			wantErr: "invalid type for prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateImport(decode(t, validPayload(tt.contact)), "")
			if result.Valid {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(result.Error, tt.wantErr) {
				t.Errorf("error %q does not contain %q", result.Error, tt.wantErr)
			}
		})
	}
}

func TestValidateImportCalendarDates(t *testing.T) {
	contactWithDate := func(date string) string {
		return `{"baseCallsign": "W1ABC", "date": "` + date + `", "time": "14:30", "frequency": 14.2, "mode": "CW"}`
	}

	rejected := []string{"2025-02-30", "2025-04-31", "2025-02-29", "2025-13-01", "2025-00-10"}
	for _, date := range rejected {
		result := ValidateImport(decode(t, validPayload(contactWithDate(date))), "")
		if result.Valid {
			t.Errorf("date %s accepted, want calendar rejection", date)
		}
	}

	// 2024 is a leap year.
	result := ValidateImport(decode(t, validPayload(contactWithDate("2024-02-29"))), "")
	if !result.Valid {
		t.Errorf("leap day 2024-02-29 rejected: %s", result.Error)
	}
}

func TestValidateImportErrorNamesLaterIndex(t *testing.T) {
	payload := `{
		"metadata": {"appName": "LZ Radio", "schemaVersion": 1},
		"contacts": [` + validContact + `, {"baseCallsign": "K2XYZ"}]
	}`
	result := ValidateImport(decode(t, payload), "")
	if result.Valid {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(result.Error, "index 1") {
		t.Errorf("error %q should name index 1", result.Error)
	}
}

func TestValidateImportOwnerIdentity(t *testing.T) {
	withStation := func(station string) string {
		return `{
			"metadata": {"appName": "LZ Radio", "schemaVersion": 1, "stationCallsign": "` + station + `"},
			"contacts": [` + validContact + `]
		}`
	}

	t.Run("matching identities accept", func(t *testing.T) {
		result := ValidateImport(decode(t, withStation("LZ1ABC")), "lz1abc")
		if !result.Valid {
			t.Fatalf("rejected: %s", result.Error)
		}
		if result.SuggestedStationCallsign != "" {
			t.Errorf("unexpected suggestion %q", result.SuggestedStationCallsign)
		}
	})

	t.Run("import-only identity suggests adoption", func(t *testing.T) {
		result := ValidateImport(decode(t, withStation("LZ1ABC")), "")
		if !result.Valid {
			t.Fatalf("rejected: %s", result.Error)
		}
		if result.SuggestedStationCallsign != "LZ1ABC" {
			t.Errorf("suggestion = %q, want LZ1ABC", result.SuggestedStationCallsign)
		}
	})

	t.Run("conflicting identities reject naming both", func(t *testing.T) {
		result := ValidateImport(decode(t, withStation("LZ1ABC")), "LZ2XYZ")
		if result.Valid {
			t.Fatal("expected rejection")
		}
		if !strings.Contains(result.Error, "LZ1ABC") || !strings.Contains(result.Error, "LZ2XYZ") {
			t.Errorf("error %q should name both callsigns", result.Error)
		}
	})

	t.Run("caller-only identity accepts", func(t *testing.T) {
		result := ValidateImport(decode(t, validPayload(validContact)), "LZ2XYZ")
		if !result.Valid {
			t.Fatalf("rejected: %s", result.Error)
		}
	})
}

func TestNormalizeContactExplicitValues(t *testing.T) {
	contact := `{
		"baseCallsign": " W1ABC ",
		"prefix": "HB",
		"suffix": null,
		"date": "2026-05-20",
		"time": "14:30",
		"frequency": 7.1,
		"mode": " CW ",
		"power": 100,
		"rstSent": "599",
		"qslSent": false,
		"qslReceived": true,
		"remarks": ""
	}`
	result := ValidateImport(decode(t, validPayload(contact)), "")
	if !result.Valid {
		t.Fatalf("rejected: %s", result.Error)
	}

	c := result.Contacts[0]
	if c.BaseCallsign != "W1ABC" || c.Mode != "CW" {
		t.Errorf("trimming failed: %+v", c)
	}
	if c.Prefix == nil || *c.Prefix != "HB" {
		t.Errorf("prefix = %v, want HB", c.Prefix)
	}
	if c.Suffix != nil {
		t.Errorf("null suffix should normalize to nil, got %v", *c.Suffix)
	}
	if c.Power == nil || *c.Power != 100 {
		t.Errorf("power = %v, want 100", c.Power)
	}
	// Explicit false/empty are preserved, not treated as missing.
	if c.QSLSent {
		t.Error("explicit qslSent=false became true")
	}
	if !c.QSLReceived {
		t.Error("qslReceived=true lost")
	}
	if c.Remarks != "" {
		t.Errorf("remarks = %q, want empty", c.Remarks)
	}
}
