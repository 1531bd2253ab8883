package logbook

import (
	"time"

	"github.com/lzradio/lzradio-backend/internal/model"
)

// ExportMetadata is the provenance header of an export file.
type ExportMetadata struct {
	AppName         string `json:"appName"`
	SchemaVersion   int    `json:"schemaVersion"`
	ExportDate      string `json:"exportDate"`
	ContactCount    int    `json:"contactCount"`
	StationCallsign string `json:"stationCallsign,omitempty"`
}

// ExportPayload is the complete import/export document.
type ExportPayload struct {
	Metadata ExportMetadata  `json:"metadata"`
	Contacts []model.Contact `json:"contacts"`
}

// BuildExportPayload assembles the export document for the given
// contacts. stationCallsign is omitted when blank.
func BuildExportPayload(contacts []model.Contact, stationCallsign string, now time.Time) ExportPayload {
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return ExportPayload{
		Metadata: ExportMetadata{
			AppName:         AppName,
			SchemaVersion:   SchemaVersion,
			ExportDate:      now.UTC().Format(time.RFC3339),
			ContactCount:    len(contacts),
			StationCallsign: stationCallsign,
		},
		Contacts: contacts,
	}
}

// ValidDate reports whether a date string is well-formed YYYY-MM-DD and a
// real calendar date.
func ValidDate(date string) bool {
	if !dateRe.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// ValidTime reports whether a time string is well-formed HH:MM or
// HH:MM:SS with in-range components.
func ValidTime(t string) bool {
	if !timeRe.MatchString(t) {
		return false
	}
	layout := "15:04"
	if len(t) == 8 {
		layout = "15:04:05"
	}
	_, err := time.Parse(layout, t)
	return err == nil
}
