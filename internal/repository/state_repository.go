package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

// Blob keys for the planning state tree. Each key holds one whole JSON value
// that is rewritten in full on every mutation.
const (
	KeyDailyReports   = "dailyReports"
	KeyWeeklyPlans    = "weeklyPlans"
	KeyTimetable      = "timetable"
	KeySettings       = "settings"
	KeyImportantDates = "importantDates"
)

// StateObserver receives timings for blob loads and rewrites.
type StateObserver interface {
	ObserveStateRead(key string, duration time.Duration)
	ObserveStateWrite(key string, duration time.Duration)
}

// StateRepository persists the planning state tree as JSON blobs in Redis.
// Values never expire; writes replace the whole value under the key, which
// keeps the last-writer-wins contract of the store it replaces.
type StateRepository struct {
	client   *redis.Client
	logger   *zap.Logger
	observer StateObserver
}

// NewStateRepository constructs a state repository.
func NewStateRepository(client *redis.Client, logger *zap.Logger) *StateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateRepository{client: client, logger: logger}
}

// WithObserver attaches latency instrumentation to blob operations.
func (r *StateRepository) WithObserver(o StateObserver) *StateRepository {
	r.observer = o
	return r
}

// Get retrieves and unmarshals the blob stored under key. A missing key
// surfaces as ErrStateMissing so callers can fall back to defaults.
func (r *StateRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrStateMissing
	}

	started := time.Now()
	raw, err := r.client.Get(ctx, key).Bytes()
	if r.observer != nil {
		r.observer.ObserveStateRead(key, time.Since(started))
	}
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrStateMissing
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state value for %s: %w", key, err)
	}

	return nil
}

// Set marshals the provided value and rewrites the blob under key.
func (r *StateRepository) Set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return fmt.Errorf("state store unavailable")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state value for %s: %w", key, err)
	}

	started := time.Now()
	err = r.client.Set(ctx, key, payload, 0).Err()
	if r.observer != nil {
		r.observer.ObserveStateWrite(key, time.Since(started))
	}
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Reports loads the full daily report collection, empty when unset.
func (r *StateRepository) Reports(ctx context.Context) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	if err := r.Get(ctx, KeyDailyReports, &reports); err != nil {
		if err == appErrors.ErrStateMissing {
			return []models.DailyReport{}, nil
		}
		return nil, err
	}
	return reports, nil
}

// SaveReports rewrites the full daily report collection.
func (r *StateRepository) SaveReports(ctx context.Context, reports []models.DailyReport) error {
	return r.Set(ctx, KeyDailyReports, reports)
}

// Plans loads the full weekly plan store, empty when unset.
func (r *StateRepository) Plans(ctx context.Context) (models.PlanStore, error) {
	var store models.PlanStore
	if err := r.Get(ctx, KeyWeeklyPlans, &store); err != nil {
		if err == appErrors.ErrStateMissing {
			return models.PlanStore{}, nil
		}
		return nil, err
	}
	if store == nil {
		store = models.PlanStore{}
	}
	return store, nil
}

// SavePlans rewrites the full weekly plan store.
func (r *StateRepository) SavePlans(ctx context.Context, store models.PlanStore) error {
	return r.Set(ctx, KeyWeeklyPlans, store)
}

// Timetable loads the grid stored under key, an empty grid when unset.
// The key varies with the per-week configuration (timetable:<week>).
func (r *StateRepository) Timetable(ctx context.Context, key string) (models.Timetable, error) {
	var t models.Timetable
	if err := r.Get(ctx, key, &t); err != nil {
		if err == appErrors.ErrStateMissing {
			return models.NewTimetable(), nil
		}
		return nil, err
	}
	if t == nil {
		t = models.NewTimetable()
	}
	return t, nil
}

// SaveTimetable rewrites the full grid under key.
func (r *StateRepository) SaveTimetable(ctx context.Context, key string, t models.Timetable) error {
	return r.Set(ctx, key, t)
}

// Settings loads the centre settings, defaults when unset.
func (r *StateRepository) Settings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	if err := r.Get(ctx, KeySettings, &s); err != nil {
		if err == appErrors.ErrStateMissing {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	if s.SessionsPerDay < models.MinSessionsPerDay || s.SessionsPerDay > models.MaxSessionsPerDay {
		s = models.DefaultSettings()
	}
	return s, nil
}

// SaveSettings rewrites the centre settings.
func (r *StateRepository) SaveSettings(ctx context.Context, s models.Settings) error {
	return r.Set(ctx, KeySettings, s)
}

// ImportantDates loads the calendar entries, empty when unset.
func (r *StateRepository) ImportantDates(ctx context.Context) ([]models.ImportantDate, error) {
	var dates []models.ImportantDate
	if err := r.Get(ctx, KeyImportantDates, &dates); err != nil {
		if err == appErrors.ErrStateMissing {
			return []models.ImportantDate{}, nil
		}
		return nil, err
	}
	return dates, nil
}

// SaveImportantDates rewrites the calendar entries.
func (r *StateRepository) SaveImportantDates(ctx context.Context, dates []models.ImportantDate) error {
	return r.Set(ctx, KeyImportantDates, dates)
}

// Close releases the underlying Redis connection if present.
func (r *StateRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
