package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"tpcell/internal/app"
	"tpcell/internal/common"
	"tpcell/internal/domain/media"
	"tpcell/internal/domain/student"
	"tpcell/internal/http/middleware"
	"tpcell/internal/http/response"
)

const maxUploadMemory = 32 << 20

type StudentHandler struct {
	profiles *app.ProfileService
	limiter  middleware.Limiter
}

func NewStudentHandler(profiles *app.ProfileService, limiter middleware.Limiter) *StudentHandler {
	return &StudentHandler{profiles: profiles, limiter: limiter}
}

func (h *StudentHandler) Me(w http.ResponseWriter, r *http.Request) {
	roll, ok := middleware.RollFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	record, err := h.profiles.Me(r.Context(), roll)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, record)
}

type submitRequest struct {
	Data *student.Student `json:"data"`
}

func (h *StudentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	roll, ok := middleware.RollFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Data == nil {
		response.Error(w, common.NewValidationError("invalid parameters", map[string]string{"data": "data is required"}))
		return
	}
	if h.limiter != nil {
		if !h.limiter.Allow("submit:"+roll, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "submit rate limit exceeded", nil))
			return
		}
	}
	created, err := h.profiles.Submit(r.Context(), roll, *req.Data)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// Modify accepts either multipart/form-data (fields + attachments) or a bare
// JSON object of fields, so the frontend does not have to switch formats when
// no files are attached.
func (h *StudentHandler) Modify(w http.ResponseWriter, r *http.Request) {
	roll, ok := middleware.RollFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil {
		if !h.limiter.Allow("modify:"+roll, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "modify rate limit exceeded", nil))
			return
		}
	}
	payload, uploads, err := parseModifyRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, noop, err := h.profiles.Modify(r.Context(), roll, payload, uploads)
	if err != nil {
		response.Error(w, err)
		return
	}
	if noop {
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func parseModifyRequest(r *http.Request) (map[string]any, map[string]media.Upload, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, nil, common.NewError(common.CodeValidation, "invalid multipart body", err)
		}
		payload := make(map[string]any, len(r.MultipartForm.Value))
		for field, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				payload[field] = values[0]
			}
		}
		uploads, err := readUploads(r.MultipartForm.File)
		if err != nil {
			return nil, nil, err
		}
		return payload, uploads, nil
	}
	payload := make(map[string]any)
	if err := decodeJSON(r, &payload); err != nil {
		return nil, nil, err
	}
	return payload, map[string]media.Upload{}, nil
}

func readUploads(files map[string][]*multipart.FileHeader) (map[string]media.Upload, error) {
	uploads := make(map[string]media.Upload, len(files))
	for field, headers := range files {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, common.NewError(common.CodeValidation, "failed to read attachment "+field, err)
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, common.NewError(common.CodeValidation, "failed to read attachment "+field, err)
		}
		uploads[field] = media.Upload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}
	return uploads, nil
}

type profilePicRequest struct {
	Email string `json:"email"`
}

type profilePicResponse struct {
	ProfilePicURL string `json:"profilePicUrl"`
}

func (h *StudentHandler) ProfilePicURL(w http.ResponseWriter, r *http.Request) {
	var req profilePicRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		response.Error(w, common.NewValidationError("email not passed", map[string]string{"email": "email is required"}))
		return
	}
	url, err := h.profiles.ProfilePicURL(r.Context(), req.Email)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profilePicResponse{ProfilePicURL: url})
}
