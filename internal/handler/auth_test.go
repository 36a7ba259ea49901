package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/errors"
	"github.com/unilife-dev/unilife/internal/service"
)

func TestRegisterHandler(t *testing.T) {
	h := newTestHandler(t)

	route := "/api/register"
	router := mux.NewRouter()
	router.HandleFunc(route, h.Register).Methods("POST")

	t.Run("successful request strips the password", func(t *testing.T) {
		h.users = &MockUserService{
			MockRegister: func(data service.RegistrationData) (domain.User, error) {
				assert.Equal(t, "bob@mail.com", data.Email)
				return domain.User{Id: "u1", Nickname: "bob", Email: "bob@mail.com", Password: "secret"}, nil
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "bob@mail.com", "password": "secret"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"msg":"Registered"`)
		assert.Contains(t, rr.Body.String(), `"nickname":"bob"`)
		assert.NotContains(t, rr.Body.String(), "secret")
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "bob@mail.com"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h.users = &MockUserService{
			MockRegister: func(data service.RegistrationData) (domain.User, error) {
				return domain.User{}, &errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"email": "bob@mail.com", "password": "secret"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	h := newTestHandler(t)

	route := "/api/login"
	router := mux.NewRouter()
	router.HandleFunc(route, h.Login).Methods("POST")
	requestBody := []byte(`{"email": "bob@mail.com", "password": "secret"}`)

	t.Run("successful request sets the session cookie", func(t *testing.T) {
		h.users = &MockUserService{
			MockLogin: func(email, password string) (domain.User, string, error) {
				return domain.User{Email: "bob@mail.com", Password: "secret"}, "test_token", nil
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, "accessToken", cookie.Name)
		assert.Equal(t, "test_token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Positive(t, cookie.MaxAge)
		assert.NotContains(t, rr.Body.String(), "secret")
	})

	t.Run("invalid request body", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{invalid json::}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		h.users = &MockUserService{
			MockLogin: func(email, password string) (domain.User, string, error) {
				return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})
}

func TestLogoutHandler(t *testing.T) {
	h := newTestHandler(t)

	route := "/api/logout"
	router := mux.NewRouter()
	router.HandleFunc(route, h.Logout).Methods("POST")

	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "abc",
		MaxAge:   9999,
		HttpOnly: true,
	}
	req := createRequest(t, http.MethodPost, route, nil, cookie)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
