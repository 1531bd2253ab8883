package logbook

import (
	"strings"

	"github.com/lzradio/lzradio-backend/internal/callsign"
	"github.com/lzradio/lzradio-backend/internal/model"
)

// keyDelimiter joins the natural-key fields. "|" cannot appear in a
// callsign, date, or time.
const keyDelimiter = "|"

// DuplicateInfo describes one skipped duplicate for the import preview.
type DuplicateInfo struct {
	Callsign string `json:"callsign"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// ImportStatistics is the preview of an import: counts plus the
// partitioned duplicate/new lists.
type ImportStatistics struct {
	ExistingCount   int             `json:"existing_count"`
	ImportFileCount int             `json:"import_file_count"`
	NewCount        int             `json:"new_count"`
	DuplicateCount  int             `json:"duplicate_count"`
	Duplicates      []DuplicateInfo `json:"duplicates"`
	NewContacts     []model.Contact `json:"new_contacts"`
}

// BuildDuplicateKey derives the composite natural key of a contact:
// baseCallsign|date|time. Prefix, suffix, frequency, and mode do not
// participate in duplicate detection.
func BuildDuplicateKey(c model.Contact) string {
	return strings.Join([]string{c.BaseCallsign, c.Date, c.Time}, keyDelimiter)
}

// ComputeImportStatistics partitions importContacts into duplicates of
// existing records and genuinely new contacts. Result containers are
// freshly allocated on every call; callers may mutate them freely.
func ComputeImportStatistics(importContacts, existingContacts []model.Contact) ImportStatistics {
	existing := make(map[string]struct{}, len(existingContacts))
	for _, c := range existingContacts {
		existing[BuildDuplicateKey(c)] = struct{}{}
	}

	duplicates := []DuplicateInfo{}
	newContacts := []model.Contact{}

	for _, c := range importContacts {
		if _, dup := existing[BuildDuplicateKey(c)]; dup {
			duplicates = append(duplicates, DuplicateInfo{
				Callsign: callsign.Build(c.BaseCallsign, deref(c.Prefix), deref(c.Suffix)),
				Date:     c.Date,
				Time:     c.Time,
			})
		} else {
			newContacts = append(newContacts, c)
		}
	}

	return ImportStatistics{
		ExistingCount:   len(existingContacts),
		ImportFileCount: len(importContacts),
		NewCount:        len(newContacts),
		DuplicateCount:  len(duplicates),
		Duplicates:      duplicates,
		NewContacts:     newContacts,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
