package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tpcell/internal/app"
	"tpcell/internal/common"
	"tpcell/internal/domain/posting"
	"tpcell/internal/http/response"
)

type PostingHandler struct {
	postings *app.PostingService
}

func NewPostingHandler(postings *app.PostingService) *PostingHandler {
	return &PostingHandler{postings: postings}
}

func (h *PostingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.postings.ListOpen(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/postings/")
	id, err := common.ParseUUID(raw)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid posting id", map[string]string{"id": "must be a uuid"}))
		return
	}
	record, err := h.postings.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, record)
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record posting.Posting
	if err := decodeJSON(r, &record); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.postings.Create(r.Context(), record)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}
