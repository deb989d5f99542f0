/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package auth gates the delivery server. Three credentials are accepted:
// the session cookie this server issued earlier, a ?auth=<token> URL
// parameter (TV devices bookmark these), and HTTP Basic. Token and Basic
// logins set the session cookie so later segment requests skip credential
// checks.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie the delivery server issues.
const CookieName = "grimnirtv_session"

// SessionTTL is how long an issued session cookie stays valid.
const SessionTTL = 30 * 24 * time.Hour

// Options configures the delivery gate. With no token and no password
// configured the gate is open (development only; serve logs a warning).
type Options struct {
	Username     string
	Password     string // plaintext comparison, fallback when no hash is set
	PasswordHash string // bcrypt hash, preferred
	Token        string // URL access token
	SigningKey   []byte // HS256 key for session cookies
}

// enabled reports whether any credential is configured.
func (o Options) enabled() bool {
	return o.Token != "" || o.Password != "" || o.PasswordHash != ""
}

// checkPassword validates a Basic auth pair.
func (o Options) checkPassword(user, pass string) bool {
	if user != o.Username {
		return false
	}
	if o.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(pass)) == nil
	}
	if o.Password == "" {
		return false
	}
	return constantTimeEqual(pass, o.Password)
}

// checkToken validates a URL access token.
func (o Options) checkToken(token string) bool {
	return o.Token != "" && token != "" && constantTimeEqual(token, o.Token)
}

// Middleware authenticates every request, issuing a session cookie after a
// successful token or Basic login.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !opts.enabled() {
				next.ServeHTTP(w, r)
				return
			}

			if cookie, err := r.Cookie(CookieName); err == nil {
				if claims, err := Parse(opts.SigningKey, cookie.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
			}

			if opts.checkToken(r.URL.Query().Get("auth")) {
				issueSession(w, opts, MethodToken)
				next.ServeHTTP(w, r)
				return
			}

			if user, pass, ok := r.BasicAuth(); ok && opts.checkPassword(user, pass) {
				issueSession(w, opts, MethodBasic)
				next.ServeHTTP(w, r)
				return
			}

			unauthorized(w)
		})
	}
}

func issueSession(w http.ResponseWriter, opts Options, method string) {
	token, err := Issue(opts.SigningKey, method, SessionTTL)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Grimnir TV"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

// constantTimeEqual compares secrets without leaking length via timing; both
// sides are hashed first so unequal lengths still take constant time.
func constantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
