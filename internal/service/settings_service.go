package service

import (
	"context"

	"github.com/lzradio/lzradio-backend/internal/callsign"
	"github.com/lzradio/lzradio-backend/internal/config"
	"github.com/lzradio/lzradio-backend/internal/storage"
)

// StationSettings is the operator's station identity. The callsign
// stamps exports and gates imports from other stations.
type StationSettings struct {
	Callsign     string `json:"callsign"`
	OperatorName string `json:"operator_name,omitempty"`
	Locator      string `json:"locator,omitempty"`
}

// SettingsService stores station settings through the storage adapter.
// Reads fall back to empty settings when nothing is stored yet.
type SettingsService struct {
	store *storage.Adapter
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store *storage.Adapter) *SettingsService {
	return &SettingsService{store: store}
}

// GetStation returns the stored station settings, or zero settings when
// none are stored.
func (s *SettingsService) GetStation(ctx context.Context) StationSettings {
	var settings StationSettings
	s.store.Get(ctx, config.CacheKey.SettingKey("station"), &settings)
	return settings
}

// SetStation normalizes and stores the station settings. Returns false
// if the write failed.
func (s *SettingsService) SetStation(ctx context.Context, settings StationSettings) bool {
	settings.Callsign = callsign.Normalize(settings.Callsign)
	return s.store.Set(ctx, config.CacheKey.SettingKey("station"), settings)
}

// StationCallsign returns just the normalized station callsign, "" when
// unset.
func (s *SettingsService) StationCallsign(ctx context.Context) string {
	return s.GetStation(ctx).Callsign
}

// AdoptStationCallsign stores the given callsign without touching the
// other station fields. Used when an import file carries an identity
// and the logbook has none yet.
func (s *SettingsService) AdoptStationCallsign(ctx context.Context, cs string) bool {
	settings := s.GetStation(ctx)
	settings.Callsign = callsign.Normalize(cs)
	return s.store.Set(ctx, config.CacheKey.SettingKey("station"), settings)
}
