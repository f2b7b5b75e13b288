package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type planStateRepository interface {
	Plans(ctx context.Context) (models.PlanStore, error)
	SavePlans(ctx context.Context, store models.PlanStore) error
}

type capacitySource interface {
	Counts(ctx context.Context, studentID, weekStart string) (map[models.Category]int, error)
}

// PlanService edits per-student weekly session plans. Every mutation is
// validated against the timetable-derived capacity before the whole plan
// store is rewritten. The service itself is stateless between requests;
// draft/dirty tracking belongs to the client.
type PlanService struct {
	state     planStateRepository
	capacity  capacitySource
	validator *validator.Validate
	logger    *zap.Logger

	mu sync.Mutex
}

// NewPlanService instantiates PlanService.
func NewPlanService(state planStateRepository, capacity capacitySource, validate *validator.Validate, logger *zap.Logger) *PlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{state: state, capacity: capacity, validator: validate, logger: logger}
}

// GetPlan returns the stored plan for a student and week, or a default plan
// with all seven empty category lists. Defaults are not persisted until the
// first successful mutation.
func (s *PlanService) GetPlan(ctx context.Context, weekStart, studentID string) (models.WeeklyPlan, error) {
	store, err := s.state.Plans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	if week, ok := store[weekStart]; ok {
		if plan, ok := week[studentID]; ok {
			return plan.Normalise(), nil
		}
	}
	return models.NewWeeklyPlan(), nil
}

// AddSession appends one session to a category list, enforcing the capacity
// bound and duplicate guard, then rewrites the plan store.
func (s *PlanService) AddSession(ctx context.Context, weekStart, studentID string, req models.PlanSessionRequest) (models.WeeklyPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category")
	}

	counts, err := s.capacity.Counts(ctx, studentID, weekStart)
	if err != nil {
		return nil, err
	}
	limit := counts[category]

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.state.Plans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	plan := planFromStore(store, weekStart, studentID)

	// The zero check runs before the length check so the caller can tell
	// "never scheduled" apart from "already full".
	if limit == 0 {
		return nil, appErrors.Clone(appErrors.ErrZeroCapacity, fmt.Sprintf("student has no %s slot in the timetable", category))
	}
	if len(plan[category]) >= limit {
		return nil, appErrors.Clone(appErrors.ErrCategoryAtCapacity, fmt.Sprintf("%s already has %d of %d sessions planned", category, len(plan[category]), limit))
	}
	if plan.Contains(category, req.SessionID) {
		return nil, appErrors.Clone(appErrors.ErrDuplicateSession, fmt.Sprintf("session %s already planned for %s", req.SessionID, category))
	}

	plan[category] = append(plan[category], req.SessionID)
	if err := s.persist(ctx, store, weekStart, studentID, plan); err != nil {
		return nil, err
	}
	s.logger.Info("plan session added",
		zap.String("week", weekStart),
		zap.String("student_id", studentID),
		zap.String("category", string(category)),
		zap.String("session_id", req.SessionID))
	return plan, nil
}

// RemoveSession drops the first occurrence of a session id from a category
// list. Removing an id that is not planned succeeds without change.
func (s *PlanService) RemoveSession(ctx context.Context, weekStart, studentID string, req models.PlanSessionRequest) (models.WeeklyPlan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.state.Plans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	plan := planFromStore(store, weekStart, studentID)

	removed := false
	ids := plan[category]
	for i, id := range ids {
		if id == req.SessionID {
			plan[category] = append(ids[:i], ids[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return plan, nil
	}
	if err := s.persist(ctx, store, weekStart, studentID, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// SavePlan replaces the whole plan for a student and week after re-checking
// every category against capacity and duplicates. Last writer wins.
func (s *PlanService) SavePlan(ctx context.Context, weekStart, studentID string, plan models.WeeklyPlan) (models.WeeklyPlan, error) {
	plan = plan.Normalise()
	for category := range plan {
		if _, err := models.ParseCategory(string(category)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category in plan")
		}
	}

	counts, err := s.capacity.Counts(ctx, studentID, weekStart)
	if err != nil {
		return nil, err
	}
	for _, category := range models.AllCategories {
		ids := plan[category]
		if len(ids) > counts[category] {
			return nil, appErrors.Clone(appErrors.ErrCategoryAtCapacity, fmt.Sprintf("%s plan has %d sessions but capacity is %d", category, len(ids), counts[category]))
		}
		if dup := firstDuplicate(ids); dup != "" {
			return nil, appErrors.Clone(appErrors.ErrDuplicateSession, fmt.Sprintf("session %s listed twice for %s", dup, category))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.state.Plans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	if err := s.persist(ctx, store, weekStart, studentID, plan); err != nil {
		return nil, err
	}
	s.logger.Info("plan saved", zap.String("week", weekStart), zap.String("student_id", studentID))
	return plan, nil
}

// WeekPlans returns every stored plan for a week keyed by student id.
func (s *PlanService) WeekPlans(ctx context.Context, weekStart string) (map[string]models.WeeklyPlan, error) {
	store, err := s.state.Plans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	week := store[weekStart]
	result := make(map[string]models.WeeklyPlan, len(week))
	for studentID, plan := range week {
		result[studentID] = plan.Normalise()
	}
	return result, nil
}

func (s *PlanService) persist(ctx context.Context, store models.PlanStore, weekStart, studentID string, plan models.WeeklyPlan) error {
	if store[weekStart] == nil {
		store[weekStart] = make(map[string]models.WeeklyPlan)
	}
	store[weekStart][studentID] = plan
	if err := s.state.SavePlans(ctx, store); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save plans")
	}
	return nil
}

func planFromStore(store models.PlanStore, weekStart, studentID string) models.WeeklyPlan {
	if week, ok := store[weekStart]; ok {
		if plan, ok := week[studentID]; ok {
			return plan.Normalise()
		}
	}
	return models.NewWeeklyPlan()
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
