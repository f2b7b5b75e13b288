package models

import "time"

// Export job lifecycle states.
const (
	ExportJobPending    = "pending"
	ExportJobProcessing = "processing"
	ExportJobCompleted  = "completed"
	ExportJobFailed     = "failed"
)

// Export output formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportJob tracks one asynchronous report export request.
type ExportJob struct {
	ID          string     `json:"id"`
	Format      string     `json:"format"`
	WeekStart   string     `json:"weekStart"`
	MentorID    string     `json:"mentorId,omitempty"`
	Status      string     `json:"status"`
	FilePath    string     `json:"-"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateExportRequest asks for a report export artefact.
type CreateExportRequest struct {
	Format    string `json:"format" validate:"required,oneof=csv pdf"`
	WeekStart string `json:"weekStart" validate:"required,datetime=2006-01-02"`
	MentorID  string `json:"mentorId"`
}
