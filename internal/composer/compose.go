// Package composer turns a resolved category plus the profile into a full
// Response: template text, attachments, and the category's suggestion list.
// Composition is pure — identical inputs produce byte-identical output.
package composer

import (
	"fmt"

	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/router"
)

const (
	websiteText        = "Here's my personal website where you can explore my work in depth:"
	videosText         = "Here are my testing videos that showcase my automation expertise:"
	articlesText       = "Here are the articles I've written about testing and quality engineering:"
	certificationsText = "These are the certifications I've earned along the way:"
)

// suggestions maps each category to its fixed follow-up list. The
// common-question and fallback lists are curated separately and share no
// entries with the category-specific lists.
var suggestions = map[router.Category][]string{
	router.CategoryWebsite: {
		"Show me your testing videos",
		"What articles have you written?",
		"What certifications do you have?",
		"What are your skills?",
	},
	router.CategoryVideos: {
		"What articles have you written?",
		"Show me your personal website",
		"What are your skills?",
		"How do you approach testing?",
	},
	router.CategoryArticles: {
		"Show me your testing videos",
		"Show me your personal website",
		"What certifications do you have?",
		"How do you approach testing?",
	},
	router.CategoryCertifications: {
		"Show me your testing videos",
		"What articles have you written?",
		"Show me your personal website",
		"What are your skills?",
	},
	router.CategoryCommonQuestion: {
		"Tell me about your projects",
		"What testing tools do you use?",
		"Describe your QA process",
		"How can I contact you?",
	},
	router.CategoryFallback: {
		"Who are you?",
		"What do you do?",
		"Tell me about your experience",
		"What's your approach to automation?",
		"Where can I see your work?",
	},
}

// Suggestions returns the fixed follow-up list for a category. The list is
// always non-empty and independent of profile content.
func Suggestions(cat router.Category) []string {
	if s, ok := suggestions[cat]; ok {
		return s
	}
	return suggestions[router.CategoryFallback]
}

// Compose builds the Response for a resolved category. qa must be the matched
// Q/A pair when cat is common-question and nil otherwise. The profile is
// read-only input; attachment slices are shared by reference.
func Compose(cat router.Category, qa *profile.QA, p *profile.Profile) Response {
	resp := Response{
		Suggestions: Suggestions(cat),
		Source:      cat,
	}

	switch cat {
	case router.CategoryWebsite:
		resp.Text = websiteText
		resp.Attachments = &Attachments{Website: p.PersonalWebsite}
	case router.CategoryVideos:
		resp.Text = videosText
		resp.Attachments = &Attachments{Videos: p.YoutubeVideos}
	case router.CategoryArticles:
		resp.Text = articlesText
		resp.Attachments = &Attachments{Articles: p.MediumPosts}
	case router.CategoryCertifications:
		resp.Text = certificationsText
		resp.Attachments = &Attachments{Certifications: p.Certifications}
	case router.CategoryCommonQuestion:
		if qa != nil {
			resp.Text = qa.Response
		}
	default:
		resp.Source = router.CategoryFallback
		resp.Text = fallbackMenu(p)
	}

	return resp
}

// fallbackMenu is the no-match reply: a redirect menu instead of a dead end.
func fallbackMenu(p *profile.Profile) string {
	return fmt.Sprintf("I'm not sure I caught that, but here's what I can help with:\n\n"+
		"• My testing videos\n"+
		"• Articles I've written\n"+
		"• My certifications\n"+
		"• My personal website\n"+
		"• Questions about my skills and experience\n\n"+
		"You can also reach me directly at %s.", p.Contact.Email)
}
