package profile

import (
	"fmt"
	"strings"
)

// Sections holds the free-text data-source fields kept alongside the
// structured profile. They feed the {dataSource} block of the remote
// completion prompt.
type Sections struct {
	Resume         string
	SocialMedia    string
	AdditionalInfo string
}

// FormatDataSource renders the profile plus free-text sections into the text
// block substituted for the {dataSource} placeholder in the system prompt.
// Sections are emitted in a fixed order so the output is deterministic.
func FormatDataSource(p *Profile, s Sections) string {
	var b strings.Builder

	if p != nil {
		fmt.Fprintf(&b, "PROFILE:\n%s — %s\n%s\n\n", p.Name, p.Title, p.Bio)
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, "SKILLS:\n%s\n\n", strings.Join(p.Skills, ", "))
		}
		if p.Experience != "" {
			fmt.Fprintf(&b, "EXPERIENCE:\n%s\n\n", p.Experience)
		}
		if p.Projects != "" {
			fmt.Fprintf(&b, "PROJECTS:\n%s\n\n", p.Projects)
		}
		if p.Contact.Email != "" {
			fmt.Fprintf(&b, "CONTACT:\n%s\n\n", p.Contact.Email)
		}
	}

	resume := s.Resume
	if resume == "" && p != nil {
		resume = p.ResumeContent
	}
	if resume != "" {
		fmt.Fprintf(&b, "RESUME/CV:\n%s\n\n", resume)
	}
	if s.SocialMedia != "" {
		fmt.Fprintf(&b, "SOCIAL MEDIA & PROFESSIONAL PROFILES:\n%s\n\n", s.SocialMedia)
	}
	if s.AdditionalInfo != "" {
		fmt.Fprintf(&b, "ADDITIONAL INFORMATION:\n%s\n\n", s.AdditionalInfo)
	}

	return strings.TrimSpace(b.String())
}
