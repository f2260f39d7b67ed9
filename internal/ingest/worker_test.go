package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saur-bh/resumebot/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func enqueueUpload(t *testing.T, s *storage.Store, id, fileName string) {
	t.Helper()
	up := storage.Upload{
		ID:         id,
		FileName:   fileName,
		MIMEType:   "text/plain",
		StoredPath: "/tmp/" + id,
		URL:        "/uploads/" + id,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.SaveUpload(up); err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}

	payload, err := NewExtractPayload(id)
	if err != nil {
		t.Fatalf("NewExtractPayload: %v", err)
	}
	if err := s.EnqueueJob(storage.Job{ID: "job-" + id, Type: JobType, PayloadJSON: payload}); err != nil {
		t.Fatalf("EnqueueJob: %v", err)
	}
}

func TestRunOnce_ResumeGoesToResumeSection(t *testing.T) {
	s := openTestStore(t)
	enqueueUpload(t, s, "up-1", "my-resume.pdf")

	w := NewWorker(s, func(path, mimeType string) (string, error) {
		return "extracted resume text", nil
	}, 0)

	done, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !done {
		t.Fatal("RunOnce processed nothing")
	}

	got, err := s.GetSection(storage.SectionResume)
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if got != "extracted resume text" {
		t.Errorf("resume section = %q", got)
	}

	up, _ := s.GetUpload("up-1")
	if !up.Extracted {
		t.Error("upload not marked extracted")
	}
}

func TestRunOnce_OtherFilesGoToAdditionalInfo(t *testing.T) {
	s := openTestStore(t)
	enqueueUpload(t, s, "up-2", "talk-notes.txt")

	w := NewWorker(s, func(path, mimeType string) (string, error) {
		return "notes text", nil
	}, 0)

	if _, err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	got, err := s.GetSection(storage.SectionAdditionalInfo)
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if got != "notes text" {
		t.Errorf("additional info section = %q", got)
	}
}

func TestRunOnce_NoJobs(t *testing.T) {
	s := openTestStore(t)

	w := NewWorker(s, func(path, mimeType string) (string, error) {
		t.Fatal("extractor called with no jobs queued")
		return "", nil
	}, 0)

	done, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if done {
		t.Error("RunOnce reported work with an empty queue")
	}
}

func TestRunOnce_ExtractorFailureMarksJobFailed(t *testing.T) {
	s := openTestStore(t)
	enqueueUpload(t, s, "up-3", "broken.pdf")

	w := NewWorker(s, func(path, mimeType string) (string, error) {
		return "", errors.New("corrupt file")
	}, 0)

	done, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !done {
		t.Fatal("RunOnce processed nothing")
	}

	// The failed job is backed off, not immediately claimable.
	if job, _ := s.ClaimNextJob([]string{JobType}); job != nil {
		t.Errorf("job claimable right after failure: %+v", job)
	}

	// No section was written.
	if _, err := s.GetSection(storage.SectionAdditionalInfo); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("section written despite extraction failure: %v", err)
	}
}

func TestSectionFor(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"My-Resume.pdf", storage.SectionResume},
		{"cv_2024.docx", storage.SectionResume},
		{"portfolio-notes.txt", storage.SectionAdditionalInfo},
	}
	for _, tt := range tests {
		if got := sectionFor(tt.file); got != tt.want {
			t.Errorf("sectionFor(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
