package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type settingsStateRepository interface {
	Settings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
}

// SettingsService manages centre-wide configuration. Shrinking
// sessionsPerDay hides higher slots from the grid but never deletes the
// assignments stored under them; growing it back reveals them again.
type SettingsService struct {
	state     settingsStateRepository
	validator *validator.Validate
	logger    *zap.Logger

	mu sync.Mutex
}

// NewSettingsService instantiates SettingsService.
func NewSettingsService(state settingsStateRepository, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{state: state, validator: validate, logger: logger}
}

// Get returns the current settings, defaults when never saved.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, err := s.state.Settings(ctx)
	if err != nil {
		return models.Settings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

// Update replaces the editable settings after bounds validation.
func (s *SettingsService) Update(ctx context.Context, req models.UpdateSettingsRequest) (models.Settings, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Settings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "sessionsPerDay must be between 1 and 10")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.Settings{SessionsPerDay: req.SessionsPerDay}
	if err := s.state.SaveSettings(ctx, settings); err != nil {
		return models.Settings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save settings")
	}
	s.logger.Info("settings updated", zap.Int("sessions_per_day", settings.SessionsPerDay))
	return settings, nil
}
