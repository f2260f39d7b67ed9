package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saur-bh/resumebot/internal/ingest"
	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/storage"
)

const maxUploadSize = 10 << 20 // 10MB

// allowedExtensions mirrors the upload allow-list: documents that can be
// text-extracted plus images kept as-is.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".json": true,
	".html": true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AdminDeps wires the admin surface to storage and the profile manager.
type AdminDeps struct {
	Store     *storage.Store
	Profiles  *profile.Manager
	Token     string
	UploadDir string
}

// NewAdminHandler returns the bearer-protected admin surface for profile and
// data-source management.
func NewAdminHandler(deps AdminDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(BearerAuth(deps.Token))

	r.Post("/api/data/upload", handleUpload(deps))
	r.Post("/api/data/personal-info", handlePersonalInfo(deps))
	r.Get("/api/data/info", handleDataInfo(deps))
	r.Get("/api/profile", handleGetProfile(deps))
	r.Put("/api/profile", handlePutProfile(deps))

	return r
}

func handleUpload(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		defer r.Body.Close()

		file, header, err := r.FormFile("file")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "file is required: %v", err)
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "file type %q is not allowed", ext)
			return
		}

		id := uuid.New().String()
		storedName := id + ext
		storedPath := filepath.Join(deps.UploadDir, storedName)

		if err := os.MkdirAll(deps.UploadDir, 0o755); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to create upload dir: %v", err)
			return
		}
		dst, err := os.Create(storedPath)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to store file: %v", err)
			return
		}
		if _, err := io.Copy(dst, file); err != nil {
			dst.Close()
			os.Remove(storedPath)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to store file: %v", err)
			return
		}
		if err := dst.Close(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to store file: %v", err)
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = mime.TypeByExtension(ext)
		}

		up := storage.Upload{
			ID:         id,
			FileName:   header.Filename,
			MIMEType:   mimeType,
			StoredPath: storedPath,
			URL:        "/uploads/" + storedName,
			CreatedAt:  time.Now().UTC(),
		}
		if err := deps.Store.SaveUpload(up); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save upload: %v", err)
			return
		}

		payload, err := ingest.NewExtractPayload(id)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to create job payload: %v", err)
			return
		}
		job := storage.Job{
			ID:          uuid.New().String(),
			Type:        ingest.JobType,
			PayloadJSON: payload,
		}
		if err := deps.Store.EnqueueJob(job); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to enqueue job: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":     id,
			"url":    up.URL,
			"status": "queued",
		})
	}
}

// PersonalInfoRequest adds free text to a data section. Replace overwrites
// the section instead of appending.
type PersonalInfoRequest struct {
	Section string `json:"section,omitempty"`
	Content string `json:"content"`
	Replace bool   `json:"replace,omitempty"`
}

func handlePersonalInfo(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req PersonalInfoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "content is required")
			return
		}

		section := req.Section
		if section == "" {
			section = storage.SectionAdditionalInfo
		}
		switch section {
		case storage.SectionResume, storage.SectionSocialMedia, storage.SectionAdditionalInfo:
		default:
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown section %q", section)
			return
		}

		var err error
		if req.Replace {
			err = deps.Store.SetSection(section, req.Content)
		} else {
			err = deps.Store.AppendSection(section, req.Content)
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save section: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "updated", "section": section})
	}
}

func handleDataInfo(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections, err := deps.Store.GetAllSections()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load sections: %v", err)
			return
		}

		uploads, err := deps.Store.ListUploads(100)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list uploads: %v", err)
			return
		}
		if uploads == nil {
			uploads = []storage.Upload{}
		}

		// Only lengths are reported for sections; the content can be large.
		sectionInfo := make(map[string]int, len(sections))
		for k, v := range sections {
			sectionInfo[k] = len(v)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"sections": sectionInfo,
			"uploads":  uploads,
		})
	}
}

func handleGetProfile(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(deps.Profiles.Get())
	}
}

func handlePutProfile(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var p profile.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if strings.TrimSpace(p.Name) == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name is required")
			return
		}

		if err := deps.Profiles.Replace(p); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save profile: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
	}
}

// UploadFileServer serves stored uploads at /uploads/.
func UploadFileServer(dir string) http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))
}
