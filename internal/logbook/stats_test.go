package logbook

import (
	"reflect"
	"testing"

	"github.com/lzradio/lzradio-backend/internal/model"
)

func testContact(base, date, timeStr string) model.Contact {
	return model.Contact{
		BaseCallsign: base,
		Date:         date,
		Time:         timeStr,
		Frequency:    14.2,
		Mode:         "SSB",
	}
}

func TestBuildDuplicateKey(t *testing.T) {
	base := testContact("W1ABC", "2026-05-20", "14:30")

	withPrefix := base
	prefix := "HB"
	withPrefix.Prefix = &prefix

	withSuffix := base
	suffix := "M"
	withSuffix.Suffix = &suffix

	otherDate := testContact("W1ABC", "2026-05-21", "14:30")
	otherTime := testContact("W1ABC", "2026-05-20", "14:31")

	key := BuildDuplicateKey(base)
	if key != "W1ABC|2026-05-20|14:30" {
		t.Fatalf("key = %q", key)
	}

	// Prefix and suffix do not participate in identity.
	if BuildDuplicateKey(withPrefix) != key {
		t.Error("prefix changed the key")
	}
	if BuildDuplicateKey(withSuffix) != key {
		t.Error("suffix changed the key")
	}

	// Date and time do.
	if BuildDuplicateKey(otherDate) == key {
		t.Error("different date produced the same key")
	}
	if BuildDuplicateKey(otherTime) == key {
		t.Error("different time produced the same key")
	}
}

func TestComputeImportStatistics(t *testing.T) {
	existing := []model.Contact{
		testContact("W1ABC", "2026-05-20", "14:30"),
		testContact("K2XYZ", "2026-05-20", "15:00"),
	}
	imported := []model.Contact{
		testContact("W1ABC", "2026-05-20", "14:30"), // duplicate
		testContact("W1ABC", "2026-05-21", "14:30"), // same call, new day
		testContact("JA1DEF", "2026-05-22", "09:15"),
	}

	stats := ComputeImportStatistics(imported, existing)

	if stats.ExistingCount != 2 || stats.ImportFileCount != 3 {
		t.Errorf("counts = %d existing, %d in file", stats.ExistingCount, stats.ImportFileCount)
	}
	if stats.NewCount != 2 || stats.DuplicateCount != 1 {
		t.Errorf("new = %d, duplicate = %d", stats.NewCount, stats.DuplicateCount)
	}

	if len(stats.Duplicates) != 1 {
		t.Fatalf("got %d duplicate entries", len(stats.Duplicates))
	}
	dup := stats.Duplicates[0]
	if dup.Callsign != "W1ABC" || dup.Date != "2026-05-20" || dup.Time != "14:30" {
		t.Errorf("duplicate info = %+v", dup)
	}

	if len(stats.NewContacts) != 2 {
		t.Fatalf("got %d new contacts", len(stats.NewContacts))
	}
	// New contacts keep the import file's order.
	if stats.NewContacts[0].Date != "2026-05-21" || stats.NewContacts[1].BaseCallsign != "JA1DEF" {
		t.Errorf("new contacts out of order: %+v", stats.NewContacts)
	}
}

func TestComputeImportStatisticsDuplicateWithinFile(t *testing.T) {
	imported := []model.Contact{
		testContact("W1ABC", "2026-05-20", "14:30"),
		testContact("W1ABC", "2026-05-20", "14:30"),
	}

	// The existing set alone decides duplication. Two identical contacts
	// in the same file that are both absent from the logbook both count
	// as new; collapsing them is the caller's decision.
	stats := ComputeImportStatistics(imported, nil)
	if stats.NewCount != 2 || stats.DuplicateCount != 0 {
		t.Errorf("new = %d, duplicate = %d", stats.NewCount, stats.DuplicateCount)
	}
}

func TestComputeImportStatisticsFreshResults(t *testing.T) {
	existing := []model.Contact{testContact("W1ABC", "2026-05-20", "14:30")}
	imported := []model.Contact{
		testContact("W1ABC", "2026-05-20", "14:30"),
		testContact("K2XYZ", "2026-05-21", "10:00"),
	}

	first := ComputeImportStatistics(imported, existing)
	second := ComputeImportStatistics(imported, existing)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different statistics")
	}

	// Each call must build its own slices.
	second.Duplicates[0].Callsign = "MUTATED"
	second.NewContacts[0].BaseCallsign = "MUTATED"
	if first.Duplicates[0].Callsign == "MUTATED" || first.NewContacts[0].BaseCallsign == "MUTATED" {
		t.Error("results share backing storage across calls")
	}
}

func TestComputeImportStatisticsEmptyInputs(t *testing.T) {
	stats := ComputeImportStatistics(nil, nil)
	if stats.ExistingCount != 0 || stats.ImportFileCount != 0 || stats.NewCount != 0 || stats.DuplicateCount != 0 {
		t.Errorf("zero-input stats = %+v", stats)
	}
	if stats.Duplicates == nil || stats.NewContacts == nil {
		t.Error("containers should be empty, not nil")
	}
}
