// Package api provides HTTP API handlers for recorded gestures and their samples.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/gestr/internal/store"
)

// GestureHandler serves the gestures recorded so far.
//
//	GET    /api/gestures              all gestures, or ?name= for one by name
//	GET    /api/gestures/{id}         one gesture with its sample summary
//	DELETE /api/gestures/{id}         a gesture and every sample of it
type GestureHandler struct {
	store *store.Store
}

// NewGestureHandler creates a new GestureHandler with the given store.
func NewGestureHandler(s *store.Store) *GestureHandler {
	return &GestureHandler{store: s}
}

// gestureID extracts {id} from /api/gestures/{id}. Empty for the collection.
func gestureID(path string) string {
	return strings.Trim(strings.TrimPrefix(path, "/api/gestures"), "/")
}

// ServeHTTP implements the http.Handler interface.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := gestureID(r.URL.Path)

	switch {
	case id == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case id != "" && r.Method == http.MethodGet:
		h.get(w, id)
	case id != "" && r.Method == http.MethodDelete:
		h.delete(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type gestureResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Samples        int    `json:"samples"`
	Fingers        int    `json:"fingers"`
	LastFrameCount int    `json:"last_frame_count"`
	TotalFrames    int    `json:"total_frames"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type listGesturesResponse struct {
	Gestures []gestureResponse `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(g *store.Gesture) gestureResponse {
	return gestureResponse{
		ID:             g.ID,
		Name:           g.Name,
		Samples:        g.Samples,
		Fingers:        g.Fingers,
		LastFrameCount: g.LastFrames,
		TotalFrames:    g.TotalFrames,
		CreatedAt:      g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      g.UpdatedAt.Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// notFoundOr writes 404 for store.ErrNotFound and 500 with msg otherwise.
func notFoundOr(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Gesture not found")
		return
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	var gestures []*store.Gesture

	if name := r.URL.Query().Get("name"); name != "" {
		g, err := h.store.Gestures().GetByName(name)
		switch {
		case err == nil:
			gestures = append(gestures, g)
		case !errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusInternalServerError, "Failed to find gesture")
			return
		}
	} else {
		var err error
		if gestures, err = h.store.Gestures().List(); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list gestures")
			return
		}
	}

	response := listGesturesResponse{Gestures: make([]gestureResponse, 0, len(gestures))}
	for _, g := range gestures {
		response.Gestures = append(response.Gestures, toResponse(g))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *GestureHandler) get(w http.ResponseWriter, id string) {
	g, err := h.store.Gestures().GetByID(id)
	if err != nil {
		notFoundOr(w, err, "Failed to get gesture")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(g))
}

func (h *GestureHandler) delete(w http.ResponseWriter, id string) {
	if err := h.store.Gestures().Delete(id); err != nil {
		notFoundOr(w, err, "Failed to delete gesture")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
