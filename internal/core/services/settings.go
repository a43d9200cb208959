package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/nbmcp/internal/core/domain"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driven"
	"github.com/custodia-labs/nbmcp/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPreviewLength = "output.preview_length"
	KeyTableRows     = "output.table_rows"
	KeyNotebookRoot  = "notebooks.root"
	KeyRateLimit     = "mcp.rate_limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	if v := s.configStore.GetInt(KeyPreviewLength); v > 0 {
		settings.PreviewLength = v
	}
	if _, ok := s.configStore.Get(KeyTableRows); ok {
		if v := s.configStore.GetInt(KeyTableRows); v >= 0 {
			settings.TableRows = v
		}
	}
	settings.NotebookRoot = s.configStore.GetString(KeyNotebookRoot)
	if v := s.configStore.GetFloat(KeyRateLimit); v > 0 {
		settings.RateLimit = v
	}

	return &settings, nil
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: config store not configured", domain.ErrInvalidInput)
	}

	current, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case KeyPreviewLength:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		current.PreviewLength = n
		stored = int64(n)
	case KeyTableRows:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		current.TableRows = n
		stored = int64(n)
	case KeyNotebookRoot:
		current.NotebookRoot = value
		stored = value
	case KeyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		current.RateLimit = f
		stored = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := current.Validate(); err != nil {
		return err
	}
	return s.configStore.Set(key, stored)
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyPreviewLength, KeyTableRows, KeyNotebookRoot, KeyRateLimit}
}
