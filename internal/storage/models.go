package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Data-source section names. Sections hold the free-text fields concatenated
// into the remote prompt's data source block.
const (
	SectionResume         = "resume"
	SectionSocialMedia    = "social_media"
	SectionAdditionalInfo = "additional_info"
)

// Upload records one stored file: the on-disk path, the public reference
// URL, and whether its text has been extracted into the data source.
type Upload struct {
	ID         string
	FileName   string
	MIMEType   string
	StoredPath string
	URL        string
	Extracted  bool
	CreatedAt  time.Time
}

// Job is one queued background task (text extraction from an upload).
type Job struct {
	ID          string
	Type        string
	PayloadJSON string
	Status      string // "pending", "running", "completed", "failed"
	Attempts    int
	MaxAttempts int
	RunAfter    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastError   string
}
