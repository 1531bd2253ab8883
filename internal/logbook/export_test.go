package logbook

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lzradio/lzradio-backend/internal/model"
)

func TestBuildExportPayload(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	payload := BuildExportPayload(nil, "LZ1ABC", now)

	if payload.Metadata.AppName != AppName || payload.Metadata.SchemaVersion != SchemaVersion {
		t.Errorf("metadata = %+v", payload.Metadata)
	}
	if payload.Metadata.ExportDate != "2026-08-30T12:00:00Z" {
		t.Errorf("export date = %q", payload.Metadata.ExportDate)
	}
	if payload.Metadata.ContactCount != 0 || payload.Contacts == nil {
		t.Error("nil contacts should export as an empty array")
	}
	if payload.Metadata.StationCallsign != "LZ1ABC" {
		t.Errorf("station callsign = %q", payload.Metadata.StationCallsign)
	}
}

func TestExportRoundTripsThroughImport(t *testing.T) {
	contacts := []model.Contact{testContact("W1ABC", "2026-05-20", "14:30")}
	payload := BuildExportPayload(contacts, "LZ1ABC", time.Now())

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	result := ValidateImport(decoded, "LZ1ABC")
	if !result.Valid {
		t.Fatalf("own export rejected: %s", result.Error)
	}
	if len(result.Contacts) != 1 || result.Contacts[0].BaseCallsign != "W1ABC" {
		t.Errorf("round-tripped contacts = %+v", result.Contacts)
	}
}

func TestExportOmitsBlankStationCallsign(t *testing.T) {
	payload := BuildExportPayload(nil, "", time.Now())

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	metadata := decoded["metadata"].(map[string]any)
	if _, present := metadata["stationCallsign"]; present {
		t.Error("blank stationCallsign should be omitted")
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2026-05-20", "2024-02-29", "2000-12-31"}
	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("ValidDate(%q) = false", d)
		}
	}

	invalid := []string{"2025-02-29", "2025-02-30", "2025-04-31", "2025-13-01", "20-05-2026", "2026-5-1", ""}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("ValidDate(%q) = true", d)
		}
	}
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "14:30", "23:59", "14:30:00", "23:59:59"}
	for _, v := range valid {
		if !ValidTime(v) {
			t.Errorf("ValidTime(%q) = false", v)
		}
	}

	invalid := []string{"24:00", "14:60", "14:30:60", "2pm", "14-30", "", "14:30:0"}
	for _, v := range invalid {
		if ValidTime(v) {
			t.Errorf("ValidTime(%q) = true", v)
		}
	}
}
