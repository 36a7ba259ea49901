package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unilife-dev/unilife/internal/middleware"
	"github.com/unilife-dev/unilife/internal/utils"
)

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["id"]

	// malformed or absent paging falls back to defaults, same as the
	// legacy parseInt(...) || behavior clients rely on
	offset := 0
	if q := r.URL.Query().Get("offset"); q != "" {
		if v, err := parseIntParam(q, "offset"); err == nil {
			offset = v
		}
	}
	limit := h.cfg.Public.DefaultCommentLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := parseIntParam(q, "limit"); err == nil && v != 0 {
			limit = v
		}
	}

	page, err := h.comments.List(postId, offset, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, page)
}

type createCommentRequest struct {
	Content string `validate:"required" json:"content"`
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["id"]
	caller := middleware.GetIdentityFromContext(r)

	var body createCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comments.Create(postId, caller, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	caller := middleware.GetIdentityFromContext(r)

	if err := h.comments.Delete(vars["id"], vars["cid"], caller); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, msgResponse{Msg: "Deleted"})
}
