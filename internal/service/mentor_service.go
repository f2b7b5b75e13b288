package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/repository"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
)

type mentorRepository interface {
	List(ctx context.Context, filter repository.MentorFilter) ([]models.Mentor, int, error)
	FindByID(ctx context.Context, id string) (*models.Mentor, error)
	Create(ctx context.Context, mentor *models.Mentor) error
	Update(ctx context.Context, mentor *models.Mentor) error
	Deactivate(ctx context.Context, id string) error
}

// MentorService manages the mentor directory.
type MentorService struct {
	repo      mentorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMentorService instantiates MentorService.
func NewMentorService(repo mentorRepository, validate *validator.Validate, logger *zap.Logger) *MentorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MentorService{repo: repo, validator: validate, logger: logger}
}

// List returns mentors with pagination metadata.
func (s *MentorService) List(ctx context.Context, filter repository.MentorFilter) ([]models.Mentor, *models.Pagination, error) {
	mentors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentors")
	}
	q := models.ListQuery{Page: filter.Page, PerPage: filter.PageSize}
	return mentors, models.NewPagination(q, total), nil
}

// Find fetches one mentor by id.
func (s *MentorService) Find(ctx context.Context, id string) (*models.Mentor, error) {
	mentor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("mentor %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor")
	}
	return mentor, nil
}

// NameOf resolves a mentor id to a display name, using the placeholder for
// unknown ids.
func (s *MentorService) NameOf(ctx context.Context, id string) string {
	mentor, err := s.repo.FindByID(ctx, id)
	if err != nil || mentor == nil {
		return models.UnknownMentorName
	}
	return mentor.Name
}

// Create adds a mentor to the directory.
func (s *MentorService) Create(ctx context.Context, req models.CreateMentorRequest) (*models.Mentor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mentor payload")
	}

	mentor := &models.Mentor{
		Name:       req.Name,
		Role:       req.Role,
		Email:      req.Email,
		Contact:    req.Contact,
		StudentIDs: req.StudentIDs,
		IsActive:   true,
	}
	if mentor.StudentIDs == nil {
		mentor.StudentIDs = []string{}
	}
	if err := s.repo.Create(ctx, mentor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mentor")
	}
	s.logger.Info("mentor added", zap.String("mentor_id", mentor.ID), zap.String("name", mentor.Name))
	return mentor, nil
}

// Update patches mutable mentor fields, including the assigned student list.
func (s *MentorService) Update(ctx context.Context, id string, req models.UpdateMentorRequest) (*models.Mentor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mentor payload")
	}
	mentor, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mentor.Name = *req.Name
	}
	if req.Role != nil {
		mentor.Role = *req.Role
	}
	if req.Email != nil {
		mentor.Email = *req.Email
	}
	if req.Contact != nil {
		mentor.Contact = *req.Contact
	}
	if req.StudentIDs != nil {
		mentor.StudentIDs = req.StudentIDs
	}
	if req.IsActive != nil {
		mentor.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, mentor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update mentor")
	}
	return mentor, nil
}

// Deactivate retires a mentor without deleting history.
func (s *MentorService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate mentor")
	}
	s.logger.Info("mentor deactivated", zap.String("mentor_id", id))
	return nil
}
