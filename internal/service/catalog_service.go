package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type sessionCatalogRepository interface {
	ListByCategory(ctx context.Context, category models.Category) ([]models.SessionCatalogEntry, error)
	ListByCategoryAndGrade(ctx context.Context, category models.Category, grade int) ([]models.SessionCatalogEntry, error)
	FindByID(ctx context.Context, id string) (*models.SessionCatalogEntry, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.SessionCatalogEntry, error)
}

type catalogStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// CatalogService answers "which sessions can this student be offered" from
// the static session catalog.
type CatalogService struct {
	sessions sessionCatalogRepository
	students catalogStudentRepository
	logger   *zap.Logger
}

// NewCatalogService instantiates CatalogService.
func NewCatalogService(sessions sessionCatalogRepository, students catalogStudentRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{sessions: sessions, students: students, logger: logger}
}

// CandidateSessions lists the catalog entries a student may take in a
// category. Academic categories are filtered to the student's exact working
// grade for that subject; non-academic categories return every entry.
// An unknown student yields an empty list rather than an error.
func (s *CatalogService) CandidateSessions(ctx context.Context, category models.Category, studentID string) ([]models.SessionCatalogEntry, error) {
	if _, err := models.ParseCategory(string(category)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("candidate sessions for unknown student", zap.String("student_id", studentID))
			return []models.SessionCatalogEntry{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if !category.IsAcademic() {
		entries, err := s.sessions.ListByCategory(ctx, category)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
		}
		return entries, nil
	}

	entries, err := s.sessions.ListByCategoryAndGrade(ctx, category, student.GradeFor(category))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return entries, nil
}

// FindSessions resolves a batch of session ids to catalog entries. Unknown
// ids are simply absent from the result.
func (s *CatalogService) FindSessions(ctx context.Context, ids []string) ([]models.SessionCatalogEntry, error) {
	entries, err := s.sessions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve sessions")
	}
	return entries, nil
}

// SessionName resolves a session id to its display name, falling back to the
// placeholder when the id is unknown.
func (s *CatalogService) SessionName(ctx context.Context, id string) string {
	entry, err := s.sessions.FindByID(ctx, id)
	if err != nil || entry == nil {
		return models.UnknownSessionName
	}
	return entry.Name
}

// SessionNames resolves a batch of ids in one query. Missing ids map to the
// placeholder so join-style rendering never fails.
func (s *CatalogService) SessionNames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		names[id] = models.UnknownSessionName
	}
	entries, err := s.sessions.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to resolve session names", zap.Error(err))
		return names
	}
	for _, e := range entries {
		names[e.ID] = e.Name
	}
	return names
}
