// Package ingest runs the background worker that turns stored uploads into
// data-source text via the SQLite job queue.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saur-bh/resumebot/internal/storage"
)

// JobType is the queue entry kind this worker processes.
const JobType = "extract_text"

// JobStore abstracts the storage operations the worker needs.
type JobStore interface {
	ClaimNextJob(types []string) (*storage.Job, error)
	CompleteJob(id string) error
	FailJob(id string, errMsg string) error
	GetUpload(id string) (storage.Upload, error)
	MarkUploadExtracted(id string) error
	AppendSection(section, content string) error
}

// Extractor produces text from a stored file.
type Extractor func(path, mimeType string) (string, error)

// Worker polls the job queue and extracts text from uploads.
type Worker struct {
	store   JobStore
	extract Extractor
	poll    time.Duration
	logger  *slog.Logger
}

// NewWorker creates a Worker. If pollInterval is <= 0, it defaults to 500ms.
func NewWorker(store JobStore, extract Extractor, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &Worker{
		store:   store,
		extract: extract,
		poll:    pollInterval,
		logger:  slog.Default(),
	}
}

// Run polls for jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		done, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.Error("worker iteration failed", "error", err)
		}
		if done {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.poll):
		}
	}
}

// RunOnce claims and processes a single extraction job.
// Returns true if a job was processed (regardless of success/failure).
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	job, err := w.store.ClaimNextJob([]string{JobType})
	if err != nil {
		return false, fmt.Errorf("claiming job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	if err := w.processJob(job); err != nil {
		w.logger.Warn("job failed", "job_id", job.ID, "error", err)
		if failErr := w.store.FailJob(job.ID, err.Error()); failErr != nil {
			w.logger.Error("failed to mark job as failed", "job_id", job.ID, "error", failErr)
		}
		return true, nil
	}

	if err := w.store.CompleteJob(job.ID); err != nil {
		return true, fmt.Errorf("completing job %s: %w", job.ID, err)
	}
	return true, nil
}

type extractPayload struct {
	UploadID string `json:"upload_id"`
}

// NewExtractPayload builds the JSON payload for an extract_text job.
func NewExtractPayload(uploadID string) (string, error) {
	b, err := json.Marshal(extractPayload{UploadID: uploadID})
	if err != nil {
		return "", fmt.Errorf("marshalling payload: %w", err)
	}
	return string(b), nil
}

func (w *Worker) processJob(job *storage.Job) error {
	var payload extractPayload
	if err := json.Unmarshal([]byte(job.PayloadJSON), &payload); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}

	up, err := w.store.GetUpload(payload.UploadID)
	if err != nil {
		return fmt.Errorf("loading upload %s: %w", payload.UploadID, err)
	}

	text, err := w.extract(up.StoredPath, up.MIMEType)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	if err := w.store.AppendSection(sectionFor(up.FileName), text); err != nil {
		return fmt.Errorf("appending section: %w", err)
	}

	if err := w.store.MarkUploadExtracted(up.ID); err != nil {
		return fmt.Errorf("marking upload extracted: %w", err)
	}
	return nil
}

// sectionFor routes résumé-looking filenames into the resume section,
// everything else into additional info.
func sectionFor(fileName string) string {
	lower := strings.ToLower(fileName)
	if strings.Contains(lower, "resume") || strings.Contains(lower, "cv") {
		return storage.SectionResume
	}
	return storage.SectionAdditionalInfo
}
