package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/services"
)

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, user *models.User) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.fail(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: missing file field", common.ErrorValidation))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(content) > MaxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}

	key, err := s.deps.Images.Upload(r.Context(), user.UserID, header.Filename, contentType, content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	url, err := s.deps.Images.PresignedGetURL(r.Context(), key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Key: key, URL: url})
}

// handleSignedURL only signs keys under the caller's own prefix.
func (s *Server) handleSignedURL(w http.ResponseWriter, r *http.Request, user *models.User) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.fail(w, r, fmt.Errorf("%w: key is required", common.ErrorValidation))
		return
	}
	if !services.OwnsKey(user.UserID, key) {
		s.fail(w, r, common.ErrorNotFound)
		return
	}

	url, err := s.deps.Images.PresignedGetURL(r.Context(), key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
