package composer

import (
	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/router"
)

// Response is a fully composed reply: text body, optional attachments, and
// the follow-up suggestions determined by the category that fired. It is
// consumed once by the renderer and never persisted.
type Response struct {
	Text        string          `json:"text"`
	Attachments *Attachments    `json:"attachments,omitempty"`
	Suggestions []string        `json:"suggestions"`
	Source      router.Category `json:"source"`
}

// Attachments carries the profile collections referenced by a reply. Slices
// are shared with the profile snapshot — the composer never copies, filters,
// or reorders them.
type Attachments struct {
	Videos         []profile.Video         `json:"videos,omitempty"`
	Articles       []profile.Article       `json:"articles,omitempty"`
	Certifications []profile.Certification `json:"certifications,omitempty"`
	Website        *profile.Website        `json:"website,omitempty"`
}
