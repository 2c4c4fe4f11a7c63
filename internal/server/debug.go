package server

import (
	"encoding/json"
	"net/http"

	"babayaga/internal/engine"
	"babayaga/pkg/api"
)

// DebugHandler exposes read-only simulation internals.
type DebugHandler struct {
	Host *engine.Host
}

func NewDebugHandler(host *engine.Host) *DebugHandler {
	return &DebugHandler{Host: host}
}

func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/despawns", h.handleDespawns)
	mux.HandleFunc("/debug/zone", h.handleZone)
	mux.HandleFunc("/debug/replay", h.handleReplay)
}

// /debug/entities - every live entity, including hidden items
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Host.Service.Entities())
}

// /debug/despawns - scheduled corpse removals
func (h *DebugHandler) handleDespawns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Host.Service.PendingDespawns())
}

// /debug/zone - the loaded layout
func (h *DebugHandler) handleZone(w http.ResponseWriter, r *http.Request) {
	l := h.Host.Service.Layout()
	if l == nil {
		http.Error(w, "no zone loaded", http.StatusNotFound)
		return
	}
	writeJSON(w, api.NewZoneView(l))
}

// /debug/replay - size of the running recording
func (h *DebugHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	type ReplaySummary struct {
		Seed    int64  `json:"seed"`
		Tick    uint64 `json:"tick"`
		Actions int    `json:"actions"`
		Resumed bool   `json:"resumed"`
	}
	actions, resumed, ok := h.Host.RecordingStats()
	if !ok {
		http.Error(w, "not recording", http.StatusNotFound)
		return
	}
	writeJSON(w, ReplaySummary{
		Seed:    h.Host.Service.Config().Seed,
		Tick:    h.Host.Service.CurrentTick(),
		Actions: actions,
		Resumed: resumed,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	// debug_client.html is opened from file://
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
