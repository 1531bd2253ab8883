// Package logbook implements the pure logic of the contact log: import
// payload validation, duplicate detection, and export payload assembly.
// Storage lives in internal/repository; this package never touches I/O.
package logbook

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lzradio/lzradio-backend/internal/callsign"
	"github.com/lzradio/lzradio-backend/internal/model"
)

const (
	// AppName is the provenance marker every export carries. Imports from
	// other applications are rejected.
	AppName = "LZ Radio"
	// SchemaVersion is the single supported import/export schema version.
	SchemaVersion = 1
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// ValidationResult is the structured outcome of import validation. It is
// returned, never thrown: the caller decides how to surface failures.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`

	// Contacts holds the normalized contacts when Valid.
	Contacts []model.Contact `json:"-"`

	// SuggestedStationCallsign is set when the import file records a
	// station callsign but the caller has none configured yet.
	SuggestedStationCallsign string `json:"suggested_station_callsign,omitempty"`
}

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Error: fmt.Sprintf(format, args...)}
}

// ValidateImport performs the strict, ordered structural validation of a
// decoded import payload. stationCallsign is the caller's configured
// owner identity ("" when unset); when both the file and the caller have
// one and they differ, the import is rejected naming both values.
//
// The first failure short-circuits with an error naming the field and,
// for contact-level problems, the contact's index.
func ValidateImport(data any, stationCallsign string) ValidationResult {
	root, ok := data.(map[string]any)
	if !ok || root == nil {
		return invalid("Invalid JSON format. Expected an object.")
	}

	metadata, ok := root["metadata"].(map[string]any)
	if !ok {
		return invalid(`Invalid format. Missing or invalid "metadata" section.`)
	}

	if appName, _ := metadata["appName"].(string); appName != AppName {
		return invalid("This file was not exported from %s. Cannot import.", AppName)
	}

	version, ok := metadata["schemaVersion"].(float64)
	if !ok {
		return invalid("Invalid metadata. Missing or invalid schema version.")
	}
	if version != SchemaVersion {
		return invalid("Unsupported schema version %v. This version of %s only supports schema version %d.",
			trimFloat(version), AppName, SchemaVersion)
	}

	rawContacts, ok := root["contacts"].([]any)
	if !ok {
		return invalid(`Invalid format. "contacts" must be an array.`)
	}
	if len(rawContacts) == 0 {
		return invalid("No contacts found in import file.")
	}

	contacts := make([]model.Contact, 0, len(rawContacts))
	for i, raw := range rawContacts {
		contact, err := validateContact(raw, i)
		if err != "" {
			return ValidationResult{Error: err}
		}
		contacts = append(contacts, contact)
	}

	result := ValidationResult{Valid: true, Contacts: contacts}

	// Owner identity crosscheck: equal or either side absent is fine.
	fileCallsign := callsign.Normalize(stringField(metadata, "stationCallsign"))
	current := callsign.Normalize(stationCallsign)
	switch {
	case fileCallsign == "" || fileCallsign == current:
		// Nothing to reconcile.
	case current == "":
		result.SuggestedStationCallsign = fileCallsign
	default:
		return invalid("This file was exported for station %s, but this logbook is configured for %s. Cannot import.",
			fileCallsign, current)
	}

	return result
}

// validateContact checks one contact object and returns its normalized
// form, or a non-empty error message naming the field and index.
func validateContact(raw any, index int) (model.Contact, string) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return model.Contact{}, fmt.Sprintf("Invalid contact at index %d. Expected an object.", index)
	}

	required := []struct {
		name string
		kind string
	}{
		{"baseCallsign", "string"},
		{"date", "string"},
		{"time", "string"},
		{"frequency", "number"},
		{"mode", "string"},
	}
	for _, field := range required {
		v, present := obj[field.name]
		if !present || v == nil {
			return model.Contact{}, fmt.Sprintf("Contact at index %d is missing required field: %s", index, field.name)
		}
		if typeName(v) != field.kind {
			return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid type for %s. Expected %s, got %s",
				index, field.name, field.kind, typeName(v))
		}
	}

	base := obj["baseCallsign"].(string)
	if strings.TrimSpace(base) == "" {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has empty baseCallsign", index)
	}

	date := obj["date"].(string)
	if !dateRe.MatchString(date) {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid date format. Expected YYYY-MM-DD, got: %s", index, date)
	}
	// Real calendar arithmetic: time.Parse rejects out-of-range days and
	// non-leap February 29ths, not just malformed strings.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid date: %s (day/month out of range)", index, date)
	}

	timeStr := obj["time"].(string)
	if !timeRe.MatchString(timeStr) {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid time format. Expected HH:MM:SS or HH:MM, got: %s", index, timeStr)
	}
	layout := "15:04"
	if len(timeStr) == 8 {
		layout = "15:04:05"
	}
	if _, err := time.Parse(layout, timeStr); err != nil {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid time: %s (out of range)", index, timeStr)
	}

	frequency := obj["frequency"].(float64)
	if frequency <= 0 {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid frequency. Must be positive, got: %v", index, trimFloat(frequency))
	}

	mode := obj["mode"].(string)
	if strings.TrimSpace(mode) == "" {
		return model.Contact{}, fmt.Sprintf("Contact at index %d has empty mode", index)
	}

	// Optional fields: absent and null are both fine, anything else must
	// carry the right type.
	for _, name := range []string{"prefix", "suffix", "rstSent", "rstReceived"} {
		if v, present := obj[name]; present && v != nil {
			if _, ok := v.(string); !ok {
				return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid type for %s. Expected string or null", index, name)
			}
		}
	}
	if v, present := obj["power"]; present && v != nil {
		p, ok := v.(float64)
		if !ok || p <= 0 {
			return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid power. Expected positive number or null", index)
		}
	}
	for _, name := range []string{"qslSent", "qslReceived"} {
		if v, present := obj[name]; present && v != nil {
			if _, ok := v.(bool); !ok {
				return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid type for %s. Expected boolean or null", index, name)
			}
		}
	}
	if v, present := obj["remarks"]; present && v != nil {
		if _, ok := v.(string); !ok {
			return model.Contact{}, fmt.Sprintf("Contact at index %d has invalid type for remarks. Expected string or null", index)
		}
	}

	return normalizeContact(obj), ""
}

// normalizeContact maps a validated raw contact to the model, applying
// defaults only where a field is genuinely absent or null. Explicit zero
// values survive: qslSent=false stays false, remarks="" stays "".
func normalizeContact(obj map[string]any) model.Contact {
	contact := model.Contact{
		BaseCallsign: strings.TrimSpace(obj["baseCallsign"].(string)),
		Date:         obj["date"].(string),
		Time:         obj["time"].(string),
		Frequency:    obj["frequency"].(float64),
		Mode:         strings.TrimSpace(obj["mode"].(string)),
	}

	contact.Prefix = optionalString(obj, "prefix")
	contact.Suffix = optionalString(obj, "suffix")
	contact.RSTSent = optionalString(obj, "rstSent")
	contact.RSTReceived = optionalString(obj, "rstReceived")

	if v, present := obj["power"]; present && v != nil {
		p := v.(float64)
		contact.Power = &p
	}
	if v, present := obj["qslSent"]; present && v != nil {
		contact.QSLSent = v.(bool)
	}
	if v, present := obj["qslReceived"]; present && v != nil {
		contact.QSLReceived = v.(bool)
	}
	if v, present := obj["remarks"]; present && v != nil {
		contact.Remarks = strings.TrimSpace(v.(string))
	}

	return contact
}

// optionalString returns a trimmed pointer for a present, non-null,
// non-blank string field, nil otherwise.
func optionalString(obj map[string]any, name string) *string {
	v, present := obj[name]
	if !present || v == nil {
		return nil
	}
	s := strings.TrimSpace(v.(string))
	if s == "" {
		return nil
	}
	return &s
}

// stringField returns a metadata string field or "".
func stringField(obj map[string]any, name string) string {
	s, _ := obj[name].(string)
	return s
}

// typeName reports a JSON value's type in schema terms.
func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// trimFloat renders whole-number floats without a trailing ".0" so error
// messages read like the integers users typed.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", f)
}
