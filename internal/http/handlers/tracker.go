package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lotoboard/server/internal/tracker"
)

// TrackerHandler exposes the draw-state tracker over HTTP. All endpoints sit
// behind the session guard; the tracker itself knows nothing about users.
type TrackerHandler struct {
	tracker *tracker.Service
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(svc *tracker.Service) *TrackerHandler {
	return &TrackerHandler{tracker: svc}
}

// callRequest is the request body for POST /game/call and /game/erase
type callRequest struct {
	Number int            `json:"number"`
	Target tracker.Target `json:"target"`
}

func (req *callRequest) validate() error {
	if req.Number < tracker.MinNumber || req.Number > tracker.MaxNumber {
		return fmt.Errorf("number must be between %d and %d", tracker.MinNumber, tracker.MaxNumber)
	}
	if req.Target != tracker.TargetLoto && req.Target != tracker.TargetBingo {
		return fmt.Errorf("target must be %q or %q", tracker.TargetLoto, tracker.TargetBingo)
	}
	return nil
}

// HandleState handles GET /game/state
func (h *TrackerHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.tracker.Snapshot())
}

// HandleCall handles POST /game/call
func (h *TrackerHandler) HandleCall(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, h.tracker.Call(req.Number, req.Target))
}

// HandleErase handles POST /game/erase
func (h *TrackerHandler) HandleErase(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, h.tracker.Erase(req.Number, req.Target))
}

// HandleNewGame handles POST /game/new
func (h *TrackerHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.tracker.StartNewGame())
}

// navigateRequest is the request body for POST /game/navigate
type navigateRequest struct {
	Game int `json:"game"`
}

// HandleNavigate handles POST /game/navigate. Out-of-range targets leave the
// state untouched and still return it.
func (h *TrackerHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondWithJSON(w, http.StatusOK, h.tracker.NavigateToGame(req.Game))
}

// resetRequest is the request body for POST /game/reset
type resetRequest struct {
	Target string `json:"target"`
}

// HandleReset handles POST /game/reset
func (h *TrackerHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Target {
	case "loto":
		respondWithJSON(w, http.StatusOK, h.tracker.ResetLoto())
	case "bingo":
		respondWithJSON(w, http.StatusOK, h.tracker.ResetBingo())
	case "statistics":
		respondWithJSON(w, http.StatusOK, h.tracker.ResetStatistics())
	default:
		respondWithError(w, http.StatusBadRequest, "target must be \"loto\", \"bingo\" or \"statistics\"")
	}
}

// HandleExportStatistics handles GET /game/statistics/export. Streams the CSV
// with a dated download filename.
func (h *TrackerHandler) HandleExportStatistics(w http.ResponseWriter, r *http.Request) {
	csv := h.tracker.ExportStatisticsCSV()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", tracker.ExportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
