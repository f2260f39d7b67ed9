package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/saur-bh/resumebot/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.LoadProfile(); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("LoadProfile on empty store = %v, want ErrNotFound", err)
	}

	doc := []byte(`{"name":"Saurabh"}`)
	if err := s.SaveProfile(doc); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := s.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("LoadProfile = %s, want %s", got, doc)
	}

	// Overwrite wins.
	doc2 := []byte(`{"name":"Updated"}`)
	if err := s.SaveProfile(doc2); err != nil {
		t.Fatalf("SaveProfile overwrite: %v", err)
	}
	got, _ = s.LoadProfile()
	if string(got) != string(doc2) {
		t.Errorf("LoadProfile after overwrite = %s, want %s", got, doc2)
	}
}

func TestSections(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetSection(SectionResume); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSection on empty store = %v, want ErrNotFound", err)
	}

	if err := s.SetSection(SectionResume, "first"); err != nil {
		t.Fatalf("SetSection: %v", err)
	}
	if err := s.AppendSection(SectionResume, "second"); err != nil {
		t.Fatalf("AppendSection: %v", err)
	}

	got, err := s.GetSection(SectionResume)
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if got != "first\n\nsecond" {
		t.Errorf("GetSection = %q, want %q", got, "first\n\nsecond")
	}

	// Append creates a missing section.
	if err := s.AppendSection(SectionSocialMedia, "links"); err != nil {
		t.Fatalf("AppendSection new: %v", err)
	}

	all, err := s.GetAllSections()
	if err != nil {
		t.Fatalf("GetAllSections: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllSections returned %d sections, want 2", len(all))
	}
	if all[SectionSocialMedia] != "links" {
		t.Errorf("social section = %q", all[SectionSocialMedia])
	}
}

func TestUploads(t *testing.T) {
	s := openTestStore(t)

	up := Upload{
		ID:         "up-1",
		FileName:   "resume.pdf",
		MIMEType:   "application/pdf",
		StoredPath: "/tmp/up-1.pdf",
		URL:        "/uploads/up-1.pdf",
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.SaveUpload(up); err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}

	got, err := s.GetUpload("up-1")
	if err != nil {
		t.Fatalf("GetUpload: %v", err)
	}
	if got.FileName != up.FileName || got.Extracted {
		t.Errorf("GetUpload = %+v", got)
	}

	if err := s.MarkUploadExtracted("up-1"); err != nil {
		t.Fatalf("MarkUploadExtracted: %v", err)
	}
	got, _ = s.GetUpload("up-1")
	if !got.Extracted {
		t.Error("Extracted = false after MarkUploadExtracted")
	}

	if err := s.MarkUploadExtracted("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkUploadExtracted(missing) = %v, want ErrNotFound", err)
	}

	list, err := s.ListUploads(10)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(list) != 1 || list[0].ID != "up-1" {
		t.Errorf("ListUploads = %+v", list)
	}
}

func TestJobLifecycle(t *testing.T) {
	s := openTestStore(t)

	job := Job{ID: "job-1", Type: "extract_text", PayloadJSON: `{"upload_id":"up-1"}`}
	if err := s.EnqueueJob(job); err != nil {
		t.Fatalf("EnqueueJob: %v", err)
	}

	claimed, err := s.ClaimNextJob([]string{"extract_text"})
	if err != nil {
		t.Fatalf("ClaimNextJob: %v", err)
	}
	if claimed == nil || claimed.ID != "job-1" {
		t.Fatalf("claimed = %+v, want job-1", claimed)
	}
	if claimed.Status != "running" {
		t.Errorf("Status = %q, want running", claimed.Status)
	}

	// A running job cannot be claimed again.
	again, err := s.ClaimNextJob([]string{"extract_text"})
	if err != nil {
		t.Fatalf("second ClaimNextJob: %v", err)
	}
	if again != nil {
		t.Errorf("second claim = %+v, want nil", again)
	}

	if err := s.CompleteJob("job-1"); err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}
	if err := s.CompleteJob("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CompleteJob(missing) = %v, want ErrNotFound", err)
	}
}

func TestJobRetryBackoff(t *testing.T) {
	s := openTestStore(t)

	job := Job{ID: "job-2", Type: "extract_text", PayloadJSON: "{}", MaxAttempts: 2}
	if err := s.EnqueueJob(job); err != nil {
		t.Fatalf("EnqueueJob: %v", err)
	}

	claimed, _ := s.ClaimNextJob([]string{"extract_text"})
	if claimed == nil {
		t.Fatal("claim returned nil")
	}

	if err := s.FailJob("job-2", "boom"); err != nil {
		t.Fatalf("FailJob: %v", err)
	}

	// Retried with backoff: pending again but not runnable yet.
	retry, err := s.ClaimNextJob([]string{"extract_text"})
	if err != nil {
		t.Fatalf("ClaimNextJob after fail: %v", err)
	}
	if retry != nil {
		t.Errorf("job claimable before backoff elapsed: %+v", retry)
	}
}

func TestJobTypeFilter(t *testing.T) {
	s := openTestStore(t)

	if err := s.EnqueueJob(Job{ID: "job-3", Type: "other_type", PayloadJSON: "{}"}); err != nil {
		t.Fatalf("EnqueueJob: %v", err)
	}

	claimed, err := s.ClaimNextJob([]string{"extract_text"})
	if err != nil {
		t.Fatalf("ClaimNextJob: %v", err)
	}
	if claimed != nil {
		t.Errorf("claimed job of wrong type: %+v", claimed)
	}
}
