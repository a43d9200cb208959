package driving

import "github.com/custodia-labs/nbmcp/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string
}
