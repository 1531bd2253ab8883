package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lzradio/lzradio-backend/internal/callsign"
	"github.com/lzradio/lzradio-backend/internal/logbook"
	"github.com/lzradio/lzradio-backend/internal/model"
	"github.com/lzradio/lzradio-backend/internal/notify"
	"github.com/lzradio/lzradio-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Common logbook service errors.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrNothingToImport = errors.New("no new contacts to import")
)

// ImportPreview is the dry-run result of an import: either a validation
// failure or the duplicate/new partition awaiting confirmation.
type ImportPreview struct {
	Valid                    bool                      `json:"valid"`
	Error                    string                    `json:"error,omitempty"`
	SuggestedStationCallsign string                    `json:"suggested_station_callsign,omitempty"`
	Statistics               *logbook.ImportStatistics `json:"statistics,omitempty"`
}

// ImportResult reports an applied import.
type ImportResult struct {
	ImportedCount int `json:"imported_count"`
	SkippedCount  int `json:"skipped_count"`
}

// LogbookService handles contact CRUD and the import/export flows.
type LogbookService struct {
	contactRepo *repository.ContactRepository
	settings    *SettingsService
	notifier    *notify.Notifier
	log         zerolog.Logger
}

// NewLogbookService creates a new LogbookService.
func NewLogbookService(contactRepo *repository.ContactRepository, settings *SettingsService, notifier *notify.Notifier, log zerolog.Logger) *LogbookService {
	return &LogbookService{
		contactRepo: contactRepo,
		settings:    settings,
		notifier:    notifier,
		log:         log,
	}
}

// ListContacts returns the whole logbook, most recent QSO first.
func (s *LogbookService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return s.contactRepo.List(ctx)
}

// CountContacts returns the number of logged contacts.
func (s *LogbookService) CountContacts(ctx context.Context) (int, error) {
	return s.contactRepo.Count(ctx)
}

// SearchContacts returns contacts matching a callsign fragment.
func (s *LogbookService) SearchContacts(ctx context.Context, fragment string) ([]model.Contact, error) {
	return s.contactRepo.SearchByCallsign(ctx, fragment)
}

// GetContact returns one contact by ID.
func (s *LogbookService) GetContact(ctx context.Context, id int64) (*model.Contact, error) {
	return s.contactRepo.GetByID(ctx, id)
}

// CreateContact validates date/time formats and logs a new contact.
func (s *LogbookService) CreateContact(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	if !logbook.ValidDate(req.Date) {
		return nil, ErrInvalidDate
	}
	if !logbook.ValidTime(req.Time) {
		return nil, ErrInvalidTime
	}

	contact := &model.Contact{
		BaseCallsign: callsign.Normalize(req.BaseCallsign),
		Prefix:       req.Prefix,
		Suffix:       req.Suffix,
		Date:         req.Date,
		Time:         req.Time,
		Frequency:    req.Frequency,
		Mode:         req.Mode,
		Power:        req.Power,
		RSTSent:      req.RSTSent,
		RSTReceived:  req.RSTReceived,
		QSLSent:      req.QSLSent,
		QSLReceived:  req.QSLReceived,
		Remarks:      req.Remarks,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// UpdateContact validates any provided date/time and applies the edit.
func (s *LogbookService) UpdateContact(ctx context.Context, id int64, req *model.UpdateContactRequest) (*model.Contact, error) {
	if req.Date != nil && !logbook.ValidDate(*req.Date) {
		return nil, ErrInvalidDate
	}
	if req.Time != nil && !logbook.ValidTime(*req.Time) {
		return nil, ErrInvalidTime
	}
	if req.BaseCallsign != nil {
		normalized := callsign.Normalize(*req.BaseCallsign)
		req.BaseCallsign = &normalized
	}
	return s.contactRepo.Update(ctx, id, req)
}

// DeleteContact removes a contact by ID.
func (s *LogbookService) DeleteContact(ctx context.Context, id int64) error {
	return s.contactRepo.Delete(ctx, id)
}

// PreviewImport validates a decoded import payload and, when valid,
// partitions its contacts against the existing logbook. Nothing is
// written.
func (s *LogbookService) PreviewImport(ctx context.Context, data any) (*ImportPreview, error) {
	result := logbook.ValidateImport(data, s.settings.StationCallsign(ctx))
	if !result.Valid {
		return &ImportPreview{Valid: false, Error: result.Error}, nil
	}

	existing, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing contacts: %w", err)
	}

	stats := logbook.ComputeImportStatistics(result.Contacts, existing)
	return &ImportPreview{
		Valid:                    true,
		SuggestedStationCallsign: result.SuggestedStationCallsign,
		Statistics:               &stats,
	}, nil
}

// ApplyImport re-validates the payload and inserts the contacts that
// are not already in the logbook. adoptCallsign stores the file's
// station identity when the logbook has none.
func (s *LogbookService) ApplyImport(ctx context.Context, data any, adoptCallsign bool) (*ImportResult, error) {
	result := logbook.ValidateImport(data, s.settings.StationCallsign(ctx))
	if !result.Valid {
		return nil, errors.New(result.Error)
	}

	existing, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing contacts: %w", err)
	}

	stats := logbook.ComputeImportStatistics(result.Contacts, existing)
	if stats.NewCount == 0 {
		return nil, ErrNothingToImport
	}

	inserted, err := s.contactRepo.BulkCreate(ctx, stats.NewContacts)
	if err != nil {
		return nil, fmt.Errorf("insert contacts: %w", err)
	}

	if adoptCallsign && result.SuggestedStationCallsign != "" {
		s.settings.AdoptStationCallsign(ctx, result.SuggestedStationCallsign)
	}

	s.notifier.Emit(notify.Event{Name: "import.applied", Payload: ImportResult{
		ImportedCount: inserted,
		SkippedCount:  stats.DuplicateCount,
	}})

	s.log.Info().
		Int("imported", inserted).
		Int("skipped", stats.DuplicateCount).
		Msg("logbook import applied")

	return &ImportResult{ImportedCount: inserted, SkippedCount: stats.DuplicateCount}, nil
}

// Export builds the canonical export payload for the whole logbook.
func (s *LogbookService) Export(ctx context.Context) (*logbook.ExportPayload, error) {
	contacts, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	payload := logbook.BuildExportPayload(contacts, s.settings.StationCallsign(ctx), time.Now().UTC())
	return &payload, nil
}
