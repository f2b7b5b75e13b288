package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hephzi-centre/admin-api/internal/models"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/export"
	"github.com/hephzi-centre/admin-api/pkg/jobs"
	"github.com/hephzi-centre/admin-api/pkg/storage"
)

const exportJobType = "report_export"

type publishedReportSource interface {
	List(ctx context.Context, filter models.ReportFilter) ([]models.DailyReport, error)
}

type studentNamesSource interface {
	NamesOf(ctx context.Context, ids []string) map[string]string
}

type mentorNameLookup interface {
	NameOf(ctx context.Context, id string) string
}

type sessionNamesSource interface {
	SessionNames(ctx context.Context, ids []string) map[string]string
}

// NameSources bundles the display-name resolvers an export needs.
type NameSources struct {
	Students studentNamesSource
	Mentors  mentorNameLookup
	Sessions sessionNamesSource
}

// ExportNames builds the resolver bundle from the directory services.
func ExportNames(students studentNamesSource, mentors mentorNameLookup, sessions sessionNamesSource) NameSources {
	return NameSources{Students: students, Mentors: mentors, Sessions: sessions}
}

type artifactQueue interface {
	Enqueue(job jobs.Job) error
}

// ExportService renders published weekly reports into downloadable CSV or
// PDF artefacts. Generation runs on the background queue; job state lives in
// memory and is lost on restart, which is acceptable for on-demand exports.
type ExportService struct {
	reports   publishedReportSource
	names     NameSources
	queue     artifactQueue
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger

	mu   sync.RWMutex
	jobs map[string]*models.ExportJob
}

// NewExportService instantiates ExportService. The queue is attached later
// via AttachQueue because the queue handler needs the service itself.
func NewExportService(reports publishedReportSource, names NameSources, store *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports:   reports,
		names:     names,
		store:     store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		jobs:      make(map[string]*models.ExportJob),
	}
}

// AttachQueue wires the background queue used for generation.
func (s *ExportService) AttachQueue(q artifactQueue) {
	s.queue = q
}

// Create registers a new export job and enqueues generation.
func (s *ExportService) Create(ctx context.Context, req models.CreateExportRequest) (*models.ExportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export queue unavailable")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		Format:    req.Format,
		WeekStart: req.WeekStart,
		MentorID:  req.MentorID,
		Status:    models.ExportJobPending,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: exportJobType, Payload: job.ID}); err != nil {
		s.setFailed(job.ID, "enqueue failed")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	s.logger.Info("export enqueued", zap.String("job_id", job.ID), zap.String("format", job.Format), zap.String("week", job.WeekStart))
	return s.snapshot(job.ID), nil
}

// Find returns the current job state.
func (s *ExportService) Find(id string) (*models.ExportJob, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("export job %s not found", id))
	}
	return job, nil
}

// Handle is the queue handler: it renders the artefact, saves it and signs
// the download token.
func (s *ExportService) Handle(ctx context.Context, job jobs.Job) error {
	jobID, _ := job.Payload.(string)
	stored := s.snapshot(jobID)
	if stored == nil {
		return fmt.Errorf("export job %s missing", jobID)
	}
	s.setStatus(jobID, models.ExportJobProcessing)

	dataset, err := s.buildDataset(ctx, stored.WeekStart, stored.MentorID)
	if err != nil {
		s.setFailed(jobID, err.Error())
		return err
	}

	var payload []byte
	switch stored.Format {
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, fmt.Sprintf("Published reports week %s", stored.WeekStart))
	default:
		payload, err = s.csv.Render(dataset)
	}
	if err != nil {
		s.setFailed(jobID, err.Error())
		return err
	}

	filename := buildExportFilename(stored)
	if _, err := s.store.Save(filename, payload); err != nil {
		s.setFailed(jobID, err.Error())
		return err
	}
	token, _, err := s.signer.Generate(jobID, filename)
	if err != nil {
		s.setFailed(jobID, err.Error())
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	if j, ok := s.jobs[jobID]; ok {
		j.Status = models.ExportJobCompleted
		j.FilePath = filename
		j.DownloadURL = "/api/v1/reports/export/" + jobID + "/download?token=" + token
		j.CompletedAt = &now
	}
	s.mu.Unlock()
	s.logger.Info("export completed", zap.String("job_id", jobID), zap.String("file", filename))
	return nil
}

// Open validates a download token and opens the artefact for streaming.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	job := s.snapshot(jobID)
	if job == nil || job.Status != models.ExportJobCompleted || job.FilePath != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export artefact not available")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export artefact")
	}
	return file, relPath, nil
}

// StartCleanup periodically removes stale artefacts until ctx is cancelled.
func (s *ExportService) StartCleanup(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.store.CleanupOlderThan(ttl)
				if err != nil {
					s.logger.Warn("export cleanup failed", zap.Error(err))
					continue
				}
				if len(deleted) > 0 {
					s.logger.Info("export artefacts cleaned", zap.Int("count", len(deleted)))
				}
			}
		}
	}()
}

// buildDataset flattens the week's published reports into a table with one
// row per report and the per-category session names resolved for display.
func (s *ExportService) buildDataset(ctx context.Context, weekStart, mentorID string) (export.Dataset, error) {
	reports, err := s.reports.List(ctx, models.ReportFilter{WeekStart: weekStart, MentorID: mentorID})
	if err != nil {
		return export.Dataset{}, err
	}

	published := make([]models.DailyReport, 0, len(reports))
	studentIDs := make([]string, 0, len(reports))
	sessionIDs := make([]string, 0)
	for _, r := range reports {
		if !r.IsPublished {
			continue
		}
		published = append(published, r)
		studentIDs = append(studentIDs, r.StudentID)
		for _, c := range models.AllCategories {
			if e := r.CompletedSessions.Entry(c); e != nil {
				sessionIDs = append(sessionIDs, e.SessionID)
			}
		}
	}

	studentNames := s.names.Students.NamesOf(ctx, studentIDs)
	sessionNames := s.names.Sessions.SessionNames(ctx, sessionIDs)

	headers := []string{"Date", "Student", "Mentor", "Demeanor"}
	for _, c := range models.AllCategories {
		headers = append(headers, string(c))
	}

	rows := make([]map[string]string, 0, len(published))
	for _, r := range published {
		row := map[string]string{
			"Date":     r.Date,
			"Student":  studentNames[r.StudentID],
			"Mentor":   s.names.Mentors.NameOf(ctx, r.MentorID),
			"Demeanor": r.Demeanor,
		}
		for _, c := range models.AllCategories {
			entry := r.CompletedSessions.Entry(c)
			if entry == nil {
				row[string(c)] = ""
				continue
			}
			row[string(c)] = sessionNames[entry.SessionID]
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}, nil
}

func (s *ExportService) snapshot(id string) *models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil
	}
	clone := *job
	return &clone
}

func (s *ExportService) setStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.Status = status
	}
}

func (s *ExportService) setFailed(id, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.Status = models.ExportJobFailed
		j.Error = reason
	}
}

func buildExportFilename(job *models.ExportJob) string {
	base := fmt.Sprintf("reports_%s_%s", job.WeekStart, job.ID[:8])
	base = strings.ReplaceAll(base, "/", "-")
	return fmt.Sprintf("%s.%s", base, job.Format)
}
