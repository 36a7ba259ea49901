package handler

import (
	"net/http"

	"github.com/unilife-dev/unilife/internal/middleware"
	"github.com/unilife-dev/unilife/internal/service"
	"github.com/unilife-dev/unilife/internal/utils"
)

type registerRequest struct {
	Nickname string `json:"nickname"`
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
	Area     string `json:"area"`
	Degree   string `json:"degree"`
}

type credentials struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
}

type userResponse struct {
	Msg  string      `json:"msg"`
	User interface{} `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.users.Register(service.RegistrationData{
		Nickname: body.Nickname,
		Email:    body.Email,
		Password: body.Password,
		Area:     body.Area,
		Degree:   body.Degree,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, userResponse{Msg: "Registered", User: user.Public()})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := utils.DecodeValidate(r.Body, &creds); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, accessToken, err := h.users.Login(creds.Email, creds.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	cookie := &http.Cookie{
		Path:     "/",
		Name:     middleware.SessionCookieName,
		Value:    accessToken,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)

	writeJSON(w, userResponse{Msg: "Logged in", User: user.Public()})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Path:     "/",
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)

	writeJSON(w, msgResponse{Msg: "Logged out"})
}
