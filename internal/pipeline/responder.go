// Package pipeline wires the rule router, the composer, and the remote
// completion proxy into the single entry point the API and CLI call for a
// chat turn.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/saur-bh/resumebot/internal/composer"
	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/proxy"
	"github.com/saur-bh/resumebot/internal/router"
	"github.com/saur-bh/resumebot/internal/storage"
)

// Chat modes. Rules answers everything locally; hybrid sends only unmatched
// utterances to the remote provider; AI sends every utterance.
const (
	ModeRules  = "rules"
	ModeHybrid = "hybrid"
	ModeAI     = "ai"
)

// maxHistoryTurns caps how much prior conversation is relayed to the
// provider. Only the most recent turns are kept.
const maxHistoryTurns = 10

// Completer is the remote-completion side of the pipeline.
type Completer interface {
	Complete(ctx context.Context, message string, history []proxy.Turn, system string) proxy.Result
	Configured() bool
}

// SectionSource supplies the free-text data sections for prompt building.
type SectionSource interface {
	GetAllSections() (map[string]string, error)
}

// Responder resolves one chat turn end to end.
type Responder struct {
	table    *router.Table
	profiles *profile.Manager
	client   Completer
	sections SectionSource
	mode     string
	logger   *slog.Logger
}

// NewResponder creates a Responder. An unrecognized mode falls back to rules.
func NewResponder(table *router.Table, profiles *profile.Manager, client Completer, sections SectionSource, mode string) *Responder {
	switch mode {
	case ModeRules, ModeHybrid, ModeAI:
	default:
		mode = ModeRules
	}
	return &Responder{
		table:    table,
		profiles: profiles,
		client:   client,
		sections: sections,
		mode:     mode,
		logger:   slog.Default(),
	}
}

// Mode returns the active chat mode.
func (r *Responder) Mode() string {
	return r.mode
}

// Route resolves an utterance against the rule table and composes the
// response. Pure: no I/O, no state change, identical inputs give identical
// output.
func Route(utterance string, p *profile.Profile) composer.Response {
	cat, qa := router.Default().Match(utterance, p)
	return composer.Compose(cat, qa, p)
}

// Respond handles one user turn. In rules mode the remote provider is never
// consulted; in hybrid mode it backs up the fallback category only; in AI
// mode it answers every turn. Remote failures degrade to the local fallback
// text, so a Response always comes back.
func (r *Responder) Respond(ctx context.Context, message string, history []proxy.Turn) composer.Response {
	p := r.profiles.Get()

	cat, qa := r.table.Match(message, p)
	if r.mode == ModeRules || (r.mode == ModeHybrid && cat != router.CategoryFallback) {
		return composer.Compose(cat, qa, p)
	}

	result := r.client.Complete(ctx, message, capHistory(history), r.systemPrompt(p))
	if result.Success {
		return composer.Response{
			Text:        result.Content,
			Suggestions: composer.Suggestions(cat),
			Source:      cat,
		}
	}

	r.logger.Warn("remote completion failed", "error", result.Error)
	return composer.Response{
		Text:        result.Fallback,
		Suggestions: composer.Suggestions(router.CategoryFallback),
		Source:      router.CategoryFallback,
	}
}

func (r *Responder) systemPrompt(p *profile.Profile) string {
	var sections profile.Sections
	if r.sections != nil {
		all, err := r.sections.GetAllSections()
		if err != nil {
			r.logger.Warn("loading data sections failed", "error", err)
		} else {
			sections = profile.Sections{
				Resume:         all[storage.SectionResume],
				SocialMedia:    all[storage.SectionSocialMedia],
				AdditionalInfo: all[storage.SectionAdditionalInfo],
			}
		}
	}
	return proxy.SystemPrompt(p.Name, p.Title, profile.FormatDataSource(p, sections))
}

func capHistory(history []proxy.Turn) []proxy.Turn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}
