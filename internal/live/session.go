package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/i18n"
	"github.com/p-n-ai/taleem/internal/lesson"
	"github.com/p-n-ai/taleem/internal/preference"
)

// Client message types.
const (
	TypeOpen     = "open"
	TypeLanguage = "language"
	TypeToggle   = "toggle"
)

// Server message types.
const (
	TypePage     = "page"
	TypeNotFound = "not_found"
	TypeError    = "error"
)

const (
	readLimit    = 4096
	writeTimeout = 10 * time.Second
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type      string `json:"type"`
	ConceptID string `json:"conceptId,omitempty"`
	Language  string `json:"language,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type      string            `json:"type"`
	Language  concept.Language  `json:"language,omitempty"`
	ConceptID string            `json:"conceptId,omitempty"`
	Page      *lesson.Page      `json:"page,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ConceptSource looks up a single concept.
type ConceptSource interface {
	Get(ctx context.Context, id string) (concept.Concept, bool)
}

// SessionFunc returns the client session id of a request, issuing one if needed.
type SessionFunc func(w http.ResponseWriter, r *http.Request) string

// Handler upgrades requests to WebSocket sessions.
type Handler struct {
	concepts       ConceptSource
	prefs          *preference.Registry
	session        SessionFunc
	originPatterns []string
}

// NewHandler creates a WebSocket handler. originPatterns are host patterns
// allowed in addition to same-origin requests.
func NewHandler(concepts ConceptSource, prefs *preference.Registry, session SessionFunc, originPatterns ...string) *Handler {
	return &Handler{
		concepts:       concepts,
		prefs:          prefs,
		session:        session,
		originPatterns: originPatterns,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := &session{
		conn:     conn,
		concepts: h.concepts,
		prefs:    h.prefs.Get(sessionID),
	}
	slog.Debug("live session started", "session", sessionID)

	err = s.run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		conn.Close(websocket.StatusNormalClosure, "")
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
	default:
		slog.Warn("live session ended", "session", sessionID, "error", err)
	}
}

type session struct {
	conn     *websocket.Conn
	concepts ConceptSource
	prefs    *preference.Store
	gen      Generation

	mu        sync.Mutex
	conceptID string

	wg sync.WaitGroup
}

func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	updates, unsubscribe := s.prefs.Subscribe()
	defer unsubscribe()
	defer s.wg.Wait()
	defer cancel()

	if err := s.sendLanguage(ctx, s.prefs.Language()); err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case lang, ok := <-updates:
				if !ok {
					return
				}
				if err := s.sendLanguage(ctx, lang); err != nil {
					return
				}
				if id := s.currentConcept(); id != "" {
					s.open(ctx, id)
				}
			}
		}
	}()

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, s.conn, &msg); err != nil {
			return err
		}

		switch msg.Type {
		case TypeOpen:
			if msg.ConceptID == "" {
				s.write(ctx, ServerMessage{Type: TypeError, Error: "conceptId is required"})
				continue
			}
			s.open(ctx, msg.ConceptID)
		case TypeLanguage:
			lang, ok := i18n.Parse(msg.Language)
			if !ok {
				s.write(ctx, ServerMessage{Type: TypeError, Error: "unsupported language"})
				continue
			}
			if err := s.prefs.SetLanguage(lang); err != nil {
				s.write(ctx, ServerMessage{Type: TypeError, Error: err.Error()})
			}
		case TypeToggle:
			s.prefs.Toggle()
		default:
			s.write(ctx, ServerMessage{Type: TypeError, Error: "unknown message type"})
		}
	}
}

// open fetches and renders a concept in the background. A later open
// supersedes it; its response is then dropped.
func (s *session) open(ctx context.Context, id string) {
	token := s.gen.Next()
	s.mu.Lock()
	s.conceptID = id
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		c, found := s.concepts.Get(ctx, id)
		msg := ServerMessage{Type: TypeNotFound, ConceptID: id}
		if found {
			page := lesson.BuildPage(c, s.prefs.Language())
			msg = ServerMessage{Type: TypePage, ConceptID: id, Language: page.Language, Page: &page}
		}

		if !s.gen.Deliver(token, func() { s.write(ctx, msg) }) {
			slog.Debug("dropped stale page", "concept_id", id)
		}
	}()
}

func (s *session) currentConcept() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conceptID
}

func (s *session) sendLanguage(ctx context.Context, lang concept.Language) error {
	return s.write(ctx, ServerMessage{Type: TypeLanguage, Language: lang, Labels: i18n.Labels(lang)})
}

func (s *session) write(ctx context.Context, msg ServerMessage) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := wsjson.Write(ctx, s.conn, msg); err != nil {
		slog.Debug("websocket write failed", "type", msg.Type, "error", err)
		return err
	}
	return nil
}
