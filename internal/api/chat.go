// Package api exposes the chat service over HTTP: an unauthenticated chat
// surface and a bearer-protected admin surface for profile and data
// management.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saur-bh/resumebot/internal/composer"
	"github.com/saur-bh/resumebot/internal/pipeline"
	"github.com/saur-bh/resumebot/internal/proxy"
	"github.com/saur-bh/resumebot/internal/router"
)

const maxRequestBodySize = 1 << 20 // 1MB

// ChatRequest is one user turn plus the prior conversation relayed by the
// client. History beyond the last ten turns is discarded server-side.
type ChatRequest struct {
	Message string       `json:"message"`
	History []proxy.Turn `json:"history,omitempty"`
}

// NewRouter assembles the full HTTP surface: the public chat endpoints, the
// bearer-protected admin endpoints, and static serving of stored uploads.
func NewRouter(responder *pipeline.Responder, deps AdminDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Post("/api/chat/message", handleChatMessage(responder))
	r.Get("/api/chat/suggestions", handleSuggestions)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))
		r.Post("/api/data/upload", handleUpload(deps))
		r.Post("/api/data/personal-info", handlePersonalInfo(deps))
		r.Get("/api/data/info", handleDataInfo(deps))
		r.Get("/api/profile", handleGetProfile(deps))
		r.Put("/api/profile", handlePutProfile(deps))
	})

	r.Handle("/uploads/*", UploadFileServer(deps.UploadDir))

	return r
}

// NewChatHandler returns the public chat surface on its own.
func NewChatHandler(responder *pipeline.Responder) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Post("/api/chat/message", handleChatMessage(responder))
	r.Get("/api/chat/suggestions", handleSuggestions)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleChatMessage(responder *pipeline.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required and must not be empty")
			return
		}

		resp := responder.Respond(r.Context(), req.Message, req.History)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// handleSuggestions returns the follow-up list for a category. Without a
// category parameter it returns the conversation-opener list.
func handleSuggestions(w http.ResponseWriter, r *http.Request) {
	cat := router.CategoryFallback
	if q := r.URL.Query().Get("category"); q != "" {
		cat = router.Category(q)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"suggestions": composer.Suggestions(cat),
	})
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
