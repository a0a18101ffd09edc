package handlers

import (
	"net/http"

	"tpcell/internal/app"
	"tpcell/internal/domain/setting"
	"tpcell/internal/http/response"
)

type AdminHandler struct {
	settings *app.SettingService
}

func NewAdminHandler(settings *app.SettingService) *AdminHandler {
	return &AdminHandler{settings: settings}
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	policy, err := h.settings.Get(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, policy)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var policy setting.Policy
	if err := decodeJSON(r, &policy); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.settings.Update(r.Context(), policy)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
