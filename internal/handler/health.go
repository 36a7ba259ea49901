package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Ok bool  `json:"ok"`
	Ts int64 `json:"ts"`
}

// Health is a liveness probe endpoint.
// Returns 200 OK if the server is running.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{Ok: true, Ts: time.Now().UnixMilli()})
}
