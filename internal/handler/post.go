package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unilife-dev/unilife/internal/middleware"
	"github.com/unilife-dev/unilife/internal/service"
	"github.com/unilife-dev/unilife/internal/utils"
)

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	posts, err := h.feed.List(category)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := h.feed.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, post)
}

// CreatePost publishes a multipart post. The session identity wins
// when present; the legacy form fields are a fallback for
// unauthenticated clients.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	images, err := h.saveImages(r, "images")
	if err != nil {
		writeUploadError(w, err)
		return
	}

	data := service.PostCreationData{
		Title:    r.FormValue("title"),
		Desc:     r.FormValue("desc"),
		Category: r.FormValue("category"),
		Images:   images,
	}

	if caller := middleware.GetIdentityFromContext(r); caller != "" {
		data.AuthorEmail = caller
	} else {
		data.AuthorEmail = r.FormValue("authorEmail")
		data.FallbackName = r.FormValue("authorName")
		data.FallbackAvatar = r.FormValue("authorAvatar")
	}

	post, err := h.feed.Create(data)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, post)
}
