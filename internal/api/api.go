// Package api exposes concepts, quizzes and the language preference over JSON HTTP.
package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/i18n"
	"github.com/p-n-ai/taleem/internal/preference"
)

// SessionCookie carries the client session id.
const SessionCookie = "taleem_session"

const maxBodyBytes = 4 << 10

// Concepts is the read side of the concept repository.
type Concepts interface {
	List(ctx context.Context) []concept.Concept
	Get(ctx context.Context, id string) (concept.Concept, bool)
}

// Handler serves the JSON API.
type Handler struct {
	concepts    Concepts
	prefs       *preference.Registry
	defaultLang concept.Language
}

// New creates an API handler. New sessions start in defaultLang unless the
// browser's Accept-Language header names a supported language.
func New(concepts Concepts, prefs *preference.Registry, defaultLang concept.Language) *Handler {
	if !defaultLang.Supported() {
		defaultLang = concept.English
	}
	return &Handler{concepts: concepts, prefs: prefs, defaultLang: defaultLang}
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/concepts", h.handleListConcepts)
	mux.HandleFunc("GET /api/concepts/{id}", h.handleGetConcept)
	mux.HandleFunc("GET /api/concepts/{id}/meta", h.handleConceptMeta)
	mux.HandleFunc("POST /api/concepts/{id}/quizzes/{questionId}/evaluate", h.handleEvaluate)
	mux.HandleFunc("GET /api/language", h.handleGetLanguage)
	mux.HandleFunc("PUT /api/language", h.handleSetLanguage)
	mux.HandleFunc("POST /api/language/toggle", h.handleToggleLanguage)
	mux.HandleFunc("GET /api/labels", h.handleLabels)
	mux.HandleFunc("GET /api/export/concepts.xlsx", h.handleExport)
}

// SessionID returns the session id from the request cookie, issuing a new
// one when it is missing or malformed.
func (h *Handler) SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if _, ok := h.prefs.Lookup(id.String()); !ok {
				// Evicted or issued before a restart.
				h.prefs.GetOrCreate(id.String(), h.initialLanguage(r))
			}
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.prefs.GetOrCreate(id, h.initialLanguage(r))
	return id
}

func (h *Handler) initialLanguage(r *http.Request) concept.Language {
	if r.Header.Get("Accept-Language") != "" {
		return i18n.Negotiate(r.Header.Get("Accept-Language"))
	}
	return h.defaultLang
}

func (h *Handler) preferences(w http.ResponseWriter, r *http.Request) *preference.Store {
	return h.prefs.Get(h.SessionID(w, r))
}

// language returns the explicit ?lang= value, or the session preference.
// ok is false when ?lang= is present but unsupported.
func (h *Handler) language(w http.ResponseWriter, r *http.Request) (concept.Language, bool) {
	if raw := r.URL.Query().Get("lang"); raw != "" {
		return i18n.Parse(raw)
	}
	return h.preferences(w, r).Language(), true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeCacheable writes a JSON body with a strong BLAKE2b ETag and answers
// conditional requests with 304.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding response", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	body = append(body, '\n')

	sum := blake2b.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Cookie, Accept-Language")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// Logging logs each request at debug level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
