package handler

import (
	"errors"
	"net/http"

	internal_errors "github.com/unilife-dev/unilife/internal/errors"
	"github.com/unilife-dev/unilife/internal/middleware"
	"github.com/unilife-dev/unilife/internal/utils"
	"github.com/unilife-dev/unilife/internal/validation"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentityFromContext(r)

	user, err := h.users.ByIdentity(caller)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, user.Public())
}

// UserByEmail serves anyone's public profile, used for other-user pages.
func (h *Handler) UserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email parameter", http.StatusBadRequest)
		return
	}

	user, err := h.users.ByIdentity(email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, user.Public())
}

type avatarResponse struct {
	Msg        string `json:"msg"`
	AvatarPath string `json:"avatarPath"`
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetIdentityFromContext(r)

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["avatar"]) == 0 {
		http.Error(w, "No file selected", http.StatusBadRequest)
		return
	}

	paths, err := h.saveImages(r, "avatar")
	if err != nil {
		writeUploadError(w, err)
		return
	}

	user, err := h.users.SetAvatar(caller, paths[0])
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, avatarResponse{Msg: "Avatar updated", AvatarPath: user.AvatarPath})
}

// writeUploadError maps media validation failures to 400 and keeps the
// ErrorWithStatusCode contract for everything else.
func writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, validation.ErrInvalidMimeType) || errors.Is(err, validation.ErrTooManyFiles) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
