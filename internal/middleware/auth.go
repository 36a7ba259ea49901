package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/unilife-dev/unilife/internal/identity"
	"github.com/unilife-dev/unilife/internal/jwt"
	"github.com/unilife-dev/unilife/internal/utils"
)

// Key to store the caller's identity in the request context
type key int

const IdentityContextKey key = 0

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "accessToken"

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt.Service
}

func NewAuth(jwtService jwt.Service) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid session.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := a.extractIdentity(r)
			if err != nil {
				if err == errNoToken {
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the caller identity when a valid token is
// present but lets anonymous requests through.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := a.extractIdentity(r)
			if err == nil && caller != "" {
				ctx := context.WithValue(r.Context(), IdentityContextKey, caller)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIdentity pulls the session token from the cookie (browser
// clients) or the Authorization header (API clients) and returns the
// caller's identity key.
func (a *Auth) extractIdentity(r *http.Request) (identity.Key, error) {
	var tokenString string
	accessCookie, err := r.Cookie(SessionCookieName)
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return "", errNoToken
	}

	return a.jwtService.DecodeIdentity(tokenString)
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

// GetIdentityFromContext retrieves the caller's identity key, empty
// when the request is anonymous.
func GetIdentityFromContext(r *http.Request) identity.Key {
	caller, ok := r.Context().Value(IdentityContextKey).(identity.Key)
	if !ok {
		return ""
	}
	return caller
}
