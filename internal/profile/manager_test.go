package profile

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// memStore is an in-memory profile.Store for tests.
type memStore struct {
	data    []byte
	saveErr error
}

func (m *memStore) LoadProfile() ([]byte, error) {
	if m.data == nil {
		return nil, ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) SaveProfile(data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = data
	return nil
}

func TestNewManager_EmptyStoreUsesDemo(t *testing.T) {
	m := NewManager(&memStore{})

	p := m.Get()
	if p == nil || p.Name == "" {
		t.Fatal("expected demo profile, got empty")
	}
	if len(p.CommonQuestions) == 0 {
		t.Error("demo profile has no common questions")
	}
	if len(p.YoutubeVideos) == 0 {
		t.Error("demo profile has no videos")
	}
}

func TestNewManager_LoadsSaved(t *testing.T) {
	saved, _ := json.Marshal(Profile{Name: "Stored", Title: "Tester"})
	m := NewManager(&memStore{data: saved})

	p := m.Get()
	if p.Name != "Stored" {
		t.Errorf("Name = %q, want %q", p.Name, "Stored")
	}
}

func TestNewManager_MalformedFallsBackToDemo(t *testing.T) {
	m := NewManager(&memStore{data: []byte("{not json")})

	p := m.Get()
	if p.Name == "" {
		t.Error("expected demo profile after malformed document")
	}
}

func TestReplace(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)

	next := Profile{Name: "Next", Title: "QA"}
	if err := m.Replace(next); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if m.Get().Name != "Next" {
		t.Errorf("Get().Name = %q after Replace", m.Get().Name)
	}
	if store.data == nil || !strings.Contains(string(store.data), `"Next"`) {
		t.Error("Replace did not persist to the store")
	}
}

func TestReplace_SaveFailureKeepsSnapshot(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	m := NewManager(store)
	before := m.Get().Name

	if err := m.Replace(Profile{Name: "Next"}); err == nil {
		t.Fatal("Replace succeeded despite store error")
	}
	if m.Get().Name != before {
		t.Error("snapshot changed although persistence failed")
	}
}

func TestSetField(t *testing.T) {
	m := NewManager(&memStore{})

	if err := m.SetField("title", "Principal QA"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if m.Get().Title != "Principal QA" {
		t.Errorf("Title = %q", m.Get().Title)
	}

	if err := m.SetField("skills", "Go, Selenium , Cypress"); err != nil {
		t.Fatalf("SetField skills: %v", err)
	}
	skills := m.Get().Skills
	if len(skills) != 3 || skills[1] != "Selenium" {
		t.Errorf("Skills = %v", skills)
	}

	if err := m.SetField("contact.email", "qa@example.com"); err != nil {
		t.Fatalf("SetField contact.email: %v", err)
	}
	if m.Get().Contact.Email != "qa@example.com" {
		t.Errorf("Contact.Email = %q", m.Get().Contact.Email)
	}

	if err := m.SetField("bogus", "x"); err == nil {
		t.Error("SetField(bogus) succeeded, want error")
	}
}

func TestAppendResumeContent(t *testing.T) {
	m := NewManager(&memStore{})

	if err := m.AppendResumeContent("first block"); err != nil {
		t.Fatalf("AppendResumeContent: %v", err)
	}
	if err := m.AppendResumeContent("second block"); err != nil {
		t.Fatalf("AppendResumeContent: %v", err)
	}

	got := m.Get().ResumeContent
	if got != "first block\n\nsecond block" {
		t.Errorf("ResumeContent = %q", got)
	}

	if err := m.AppendResumeContent(""); err != nil {
		t.Fatalf("AppendResumeContent empty: %v", err)
	}
	if m.Get().ResumeContent != got {
		t.Error("empty append changed the content")
	}
}
