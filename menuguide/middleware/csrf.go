package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/pandamasta/menuguide/menuguide"
)

// CSRFFormField is the hidden form field carrying the token.
const CSRFFormField = "csrf_token"

// multipart forms keep at most this much in memory; the rest spools to disk
const multipartMemory = 8 << 20

// CSRFMiddleware issues a double-submit token cookie and checks it on
// state-changing requests, from the configured header or the form field.
func CSRFMiddleware(cfg *menuguide.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Step 1: Reuse the cookie token or issue a new one
		var token string
		cookie, err := r.Cookie(cfg.CSRF.CookieName)
		if err != nil || cookie.Value == "" {
			token, err = generateCSRFToken()
			if err != nil {
				slog.Error("[CSRF] Token generation failed", "error", err)
				http.Error(w, "Internal error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CSRF.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cfg.CSRF.MaxAge.Seconds()),
				HttpOnly: false, // read by forms
				Secure:   cfg.CSRF.Secure,
				SameSite: cfg.CSRF.SameSite,
			})
			slog.Debug("[CSRF] Token issued", "path", r.URL.Path)
		} else {
			token = cookie.Value
		}

		// Step 2: Store in context for templates
		r = r.WithContext(context.WithValue(r.Context(), CsrfKey, token))

		// Step 3: Validate on state-changing methods
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if err := checkCSRF(cfg, r, token); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					slog.Warn("[CSRF] Request body too large", "path", r.URL.Path, "limit", tooLarge.Limit)
					http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
					return
				}
				slog.Warn("[CSRF] Rejected request", "path", r.URL.Path, "err", err)
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}
		}

		// Step 4: Drop spooled upload files once the request is done
		defer removeMultipart(r)
		next.ServeHTTP(w, r)
	})
}

// removeMultipart deletes temp files of a form parsed on a derived request;
// net/http only cleans up forms parsed on the request it created.
func removeMultipart(r *http.Request) {
	if r.MultipartForm == nil {
		return
	}
	if err := r.MultipartForm.RemoveAll(); err != nil {
		slog.Warn("[CSRF] Failed to remove multipart files", "path", r.URL.Path, "err", err)
	}
}

func checkCSRF(cfg *menuguide.Config, r *http.Request, token string) error {
	sent := r.Header.Get(cfg.CSRF.HeaderName)
	if sent == "" {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(multipartMemory); err != nil {
				return err
			}
		} else if err := r.ParseForm(); err != nil {
			return err
		}
		sent = r.PostFormValue(CSRFFormField)
	}
	if sent == "" {
		return ErrMissingCSRF
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(sent)) != 1 {
		return ErrInvalidCSRF
	}
	return nil
}

func generateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
