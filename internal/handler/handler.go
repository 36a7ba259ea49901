package handler

import (
	"encoding/json"
	"net/http"

	"github.com/unilife-dev/unilife/internal/config"
	"github.com/unilife-dev/unilife/internal/logger"
	"github.com/unilife-dev/unilife/internal/service"
	"github.com/unilife-dev/unilife/internal/storage/fs"
)

type Handler struct {
	users    service.UserService
	feed     service.FeedService
	comments service.CommentService
	messages service.MessageService
	media    *fs.Storage
	cfg      *config.Config
}

func New(users service.UserService, feed service.FeedService, comments service.CommentService, messages service.MessageService, media *fs.Storage, cfg *config.Config) *Handler {
	return &Handler{users, feed, comments, messages, media, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("response encode failed", "error", err)
	}
}

// msgResponse is the {"msg": ...} envelope legacy clients expect from
// mutating endpoints.
type msgResponse struct {
	Msg string `json:"msg"`
}
