package handlers

import (
	"context"
	"net/http"
	"strings"

	"tpcell/internal/app"
	"tpcell/internal/http/response"
)

type StatusHandler struct {
	status *app.StatusService
}

func NewStatusHandler(status *app.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

type placedSingleResponse struct {
	Placed bool `json:"placed"`
}

type placedReportResponse struct {
	Placed *app.PlacedReport `json:"placed"`
}

// PlacedStatus answers for one roll when ?roll= is given, otherwise returns
// the tier-bucketed report of every placed roll.
func (h *StatusHandler) PlacedStatus(w http.ResponseWriter, r *http.Request) {
	roll := strings.TrimSpace(r.URL.Query().Get("roll"))
	if roll == "" {
		report, err := h.status.PlacedReportAll(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, placedReportResponse{Placed: report})
		return
	}
	placed, err := h.status.PlacedForRoll(r.Context(), roll)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, placedSingleResponse{Placed: placed})
}

type internSingleResponse struct {
	Internship bool `json:"internship"`
}

type internReportResponse struct {
	Internship []string `json:"internship"`
}

func (h *StatusHandler) InternStatus2(w http.ResponseWriter, r *http.Request) {
	h.internStatus(w, r, h.status.Intern2ForRoll, h.status.Intern2Rolls)
}

func (h *StatusHandler) InternStatus6(w http.ResponseWriter, r *http.Request) {
	h.internStatus(w, r, h.status.Intern6ForRoll, h.status.Intern6Rolls)
}

func (h *StatusHandler) internStatus(w http.ResponseWriter, r *http.Request,
	single func(ctx context.Context, roll string) (bool, error),
	report func(ctx context.Context) ([]string, error),
) {
	roll := strings.TrimSpace(r.URL.Query().Get("roll"))
	if roll == "" {
		rolls, err := report(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, internReportResponse{Internship: rolls})
		return
	}
	got, err := single(r.Context(), roll)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, internSingleResponse{Internship: got})
}

type fteSingleResponse struct {
	FTE bool `json:"fte"`
}

type fteReportResponse struct {
	FTE []string `json:"fte"`
}

func (h *StatusHandler) FTEStatus(w http.ResponseWriter, r *http.Request) {
	roll := strings.TrimSpace(r.URL.Query().Get("roll"))
	if roll == "" {
		rolls, err := h.status.FTERolls(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, fteReportResponse{FTE: rolls})
		return
	}
	got, err := h.status.FTEForRoll(r.Context(), roll)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, fteSingleResponse{FTE: got})
}

type setPlacedStatusResponse struct {
	PlacedStatus string `json:"placed_status"`
}

// SetPlacedStatus is the admin override for off-campus placements; roll and
// placed_status arrive as query parameters.
func (h *StatusHandler) SetPlacedStatus(w http.ResponseWriter, r *http.Request) {
	roll := strings.TrimSpace(r.URL.Query().Get("roll"))
	status := strings.TrimSpace(r.URL.Query().Get("placed_status"))
	value, err := h.status.SetPlacedStatus(r.Context(), roll, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, setPlacedStatusResponse{PlacedStatus: string(value)})
}
