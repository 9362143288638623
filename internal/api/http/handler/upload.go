package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/api/http/view"
	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

// maxMemory is the part of a multipart body kept in memory; the rest is
// buffered in temporary files.
const maxMemory = 32 << 20

// Upload handles dashboard, upload and download pages. Every route expects an
// authenticated session in the request context.
type Upload struct {
	pager
	uploadService UploadService
	logger        *logger.Logger
}

// NewUpload creates a new Upload handler.
func NewUpload(
	uploadService UploadService,
	sessions SessionManager,
	contextManager model.ContextManager,
	renderer Renderer,
	logger *logger.Logger,
) *Upload {
	return &Upload{
		pager: pager{
			sessions:       sessions,
			contextManager: contextManager,
			renderer:       renderer,
		},
		uploadService: uploadService,
		logger:        logger,
	}
}

// Dashboard lists the user's uploads, most recent first.
func (h *Upload) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	page := view.Page{Title: "Dashboard"}

	uploads, err := h.uploadService.List(r.Context(), session.UserID)
	if err != nil {
		h.logger.Error("Upload handler: failed to list uploads",
			"user_id", session.UserID,
			"error", err.Error())
		page.Flashes = []string{msgFetchUploads}
	}
	page.Uploads = uploads

	h.render(w, r, http.StatusOK, view.PageDashboard, page)
}

// UploadForm renders the upload form.
func (h *Upload) UploadForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageUpload, view.Page{Title: "Upload"})
}

// Upload stores the submitted file and redirects to the dashboard.
func (h *Upload) Upload(w http.ResponseWriter, r *http.Request) {
	session, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			h.logger.Debug("Upload handler: malformed multipart body",
				"user_id", session.UserID,
				"error", err.Error())
		}
		h.fail(w, r, http.StatusBadRequest, msgNoFile)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Debug("Upload handler: failed to remove temporary files", "error", err.Error())
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		h.fail(w, r, http.StatusBadRequest, msgNoFile)
		return
	}
	defer file.Close()

	_, err = h.uploadService.Upload(r.Context(), model.UploadParams{
		UserID:      session.UserID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		status, msg := handleError(err)
		if errors.Is(err, model.ErrValidation) {
			msg = msgNoFile
		} else {
			h.logger.Error("Upload handler: upload failed",
				"user_id", session.UserID,
				"error", err.Error())
			if status == http.StatusInternalServerError {
				msg = msgUploadFailed
			}
		}
		h.fail(w, r, status, msg)
		return
	}

	h.redirect(w, r, "/dashboard", msgUploadSuccess)
}

func (h *Upload) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, view.PageUpload, view.Page{
		Title:   "Upload",
		Flashes: []string{msg},
	})
}

// Download streams an upload owned by the current user.
func (h *Upload) Download(w http.ResponseWriter, r *http.Request) {
	session, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	uploadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.render(w, r, http.StatusNotFound, view.PageError, view.Page{Title: msgNotFound})
		return
	}

	upload, body, err := h.uploadService.Open(r.Context(), session.UserID, uploadID)
	if err != nil {
		status, msg := handleError(err)
		if status != http.StatusNotFound {
			h.logger.Error("Upload handler: download failed",
				"user_id", session.UserID,
				"upload_id", uploadID,
				"error", err.Error())
		}
		h.render(w, r, status, view.PageError, view.Page{Title: msg})
		return
	}
	defer body.Close()

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": upload.Filename}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if upload.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(upload.Size, 10))
	}

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("Upload handler: failed to stream upload",
			"upload_id", upload.ID,
			"error", err.Error())
	}
}
