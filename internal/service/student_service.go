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

type studentRepository interface {
	List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Deactivate(ctx context.Context, id string) error
}

// StudentService manages the student directory.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService instantiates StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students with pagination metadata.
func (s *StudentService) List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	q := models.ListQuery{Page: filter.Page, PerPage: filter.PageSize}
	return students, models.NewPagination(q, total), nil
}

// Find fetches one student by id.
func (s *StudentService) Find(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// NameOf resolves a student id to a display name, using the placeholder for
// unknown ids so joined views never break on dangling references.
func (s *StudentService) NameOf(ctx context.Context, id string) string {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil || student == nil {
		return models.UnknownStudentName
	}
	return student.Name
}

// NamesOf resolves a batch of student ids in one query.
func (s *StudentService) NamesOf(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		names[id] = models.UnknownStudentName
	}
	students, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to resolve student names", zap.Error(err))
		return names
	}
	for _, st := range students {
		names[st.ID] = st.Name
	}
	return names
}

// Create enrols a new student.
func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student := &models.Student{
		Name:        req.Name,
		MentorID:    req.MentorID,
		Grade:       req.Grade,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Contact:     req.Contact,
		Grades:      req.Grades,
		Batches:     req.Batches,
		ABC:         req.ABC,
		Tags:        req.Tags,
		IsActive:    true,
	}
	if student.Grades == nil {
		student.Grades = models.SubjectGrades{}
	}
	if student.Batches == nil {
		student.Batches = models.BatchLabels{}
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student enrolled", zap.String("student_id", student.ID), zap.String("name", student.Name))
	return student, nil
}

// Update patches mutable student fields.
func (s *StudentService) Update(ctx context.Context, id string, req models.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.MentorID != nil {
		student.MentorID = req.MentorID
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Contact != nil {
		student.Contact = *req.Contact
	}
	if req.Grades != nil {
		student.Grades = *req.Grades
	}
	if req.Batches != nil {
		student.Batches = *req.Batches
	}
	if req.ABC != nil {
		student.ABC = *req.ABC
	}
	if req.Tags != nil {
		student.Tags = req.Tags
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Deactivate retires a student without deleting history.
func (s *StudentService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate student")
	}
	s.logger.Info("student deactivated", zap.String("student_id", id))
	return nil
}
