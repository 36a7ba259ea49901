package handler

import (
	"net/http"

	"github.com/unilife-dev/unilife/internal/middleware"
	"github.com/unilife-dev/unilife/internal/utils"
)

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentityFromContext(r)
	peer := r.URL.Query().Get("peer")

	history, err := h.messages.History(caller, peer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, history)
}

// SendMessage accepts a multipart form: toEmail, optional text and up
// to the configured number of images. Text may be empty when at least
// one image is attached.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentityFromContext(r)

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	images, err := h.saveImages(r, "images")
	if err != nil {
		writeUploadError(w, err)
		return
	}

	msg, err := h.messages.Send(caller, r.FormValue("toEmail"), r.FormValue("text"), images)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, msg)
}

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentityFromContext(r)

	threads, err := h.messages.Threads(caller)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, threads)
}
