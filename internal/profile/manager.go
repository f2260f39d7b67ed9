package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// ErrNotFound is returned by a Store when no profile has been saved yet.
var ErrNotFound = errors.New("profile not found")

// Store defines the persistence operations the Manager needs.
// Implemented by storage.Store.
type Store interface {
	LoadProfile() ([]byte, error)
	SaveProfile(data []byte) error
}

// Manager holds the in-memory profile snapshot shared by all requests.
// The snapshot is loaded once and only ever replaced wholesale, so readers
// can share it without copying.
type Manager struct {
	store Store

	mu      sync.RWMutex
	current *Profile
}

// NewManager loads the saved profile from the store, falling back to the
// bundled demo profile when none exists or the stored document is malformed.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}

	data, err := store.LoadProfile()
	switch {
	case errors.Is(err, ErrNotFound):
		p := Demo()
		m.current = &p
	case err != nil:
		slog.Warn("loading profile, using demo profile", "error", err)
		p := Demo()
		m.current = &p
	default:
		var p Profile
		if err := json.Unmarshal(data, &p); err != nil {
			slog.Warn("malformed stored profile, using demo profile", "error", err)
			p = Demo()
		}
		m.current = &p
	}

	return m
}

// Get returns the current profile snapshot. The returned pointer is shared;
// callers must not mutate it.
func (m *Manager) Get() *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Replace persists the given profile and swaps the in-memory snapshot
// atomically. Last write wins; there is no versioning.
func (m *Manager) Replace(p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SaveProfile(data); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	m.current = &p
	return nil
}

// SetField updates a single scalar profile field by name and persists the
// snapshot. Skills accepts a comma-separated list.
func (m *Manager) SetField(key, value string) error {
	p := *m.Get()

	switch key {
	case "name":
		p.Name = value
	case "title":
		p.Title = value
	case "bio":
		p.Bio = value
	case "skills":
		var skills []string
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		p.Skills = skills
	case "experience":
		p.Experience = value
	case "projects":
		p.Projects = value
	case "contact.email":
		p.Contact.Email = value
	case "contact.linkedin":
		p.Contact.LinkedIn = value
	case "contact.github":
		p.Contact.GitHub = value
	default:
		return fmt.Errorf("unknown profile field: %q", key)
	}

	return m.Replace(p)
}

// AppendResumeContent concatenates extracted résumé text onto the profile's
// free-text résumé field and persists the updated snapshot.
func (m *Manager) AppendResumeContent(text string) error {
	if text == "" {
		return nil
	}
	p := *m.Get()
	if p.ResumeContent != "" {
		p.ResumeContent += "\n\n"
	}
	p.ResumeContent += text
	return m.Replace(p)
}
