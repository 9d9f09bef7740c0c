package live_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/live"
	"github.com/p-n-ai/taleem/internal/preference"
)

// gatedSource blocks Get for ids that have a gate until the gate is closed.
type gatedSource struct {
	mu       sync.Mutex
	concepts map[string]concept.Concept
	gates    map[string]chan struct{}
}

func (s *gatedSource) Get(ctx context.Context, id string) (concept.Concept, bool) {
	s.mu.Lock()
	gate := s.gates[id]
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return concept.Concept{}, false
		}
	}
	c, ok := s.concepts[id]
	return c, ok
}

func bilingual(id, en, ur string) concept.Concept {
	return concept.Concept{
		ConceptID:  id,
		GradeLevel: 7,
		LocalizedContent: map[concept.Language]concept.LocalizedContent{
			concept.English: {Title: en, Content: concept.Content{Introduction: "intro"}},
			concept.Urdu:    {Title: ur, Content: concept.Content{Introduction: "تعارف"}},
		},
	}
}

func startServer(t *testing.T, src live.ConceptSource, prefs *preference.Registry) *websocket.Conn {
	t.Helper()
	h := live.NewHandler(src, prefs, func(http.ResponseWriter, *http.Request) string { return "test-session" })
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) live.ServerMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	var msg live.ServerMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("read error = %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg live.ClientMessage) {
	t.Helper()
	if err := wsjson.Write(t.Context(), conn, msg); err != nil {
		t.Fatalf("write error = %v", err)
	}
}

func TestSession_OpenAndLanguage(t *testing.T) {
	src := &gatedSource{concepts: map[string]concept.Concept{
		"sets-intro": bilingual("sets-intro", "Introduction to Sets", "سیٹ کا تعارف"),
	}}
	prefs := preference.NewRegistry(concept.English, time.Hour)
	conn := startServer(t, src, prefs)

	hello := read(t, conn)
	if hello.Type != live.TypeLanguage || hello.Language != concept.English || len(hello.Labels) == 0 {
		t.Fatalf("first message = %+v, want english language message with labels", hello)
	}

	send(t, conn, live.ClientMessage{Type: live.TypeOpen, ConceptID: "sets-intro"})
	msg := read(t, conn)
	if msg.Type != live.TypePage || msg.Page == nil || msg.Page.Title != "Introduction to Sets" {
		t.Fatalf("open response = %+v", msg)
	}

	send(t, conn, live.ClientMessage{Type: live.TypeLanguage, Language: "ur-PK"})
	if msg := read(t, conn); msg.Type != live.TypeLanguage || msg.Language != concept.Urdu {
		t.Fatalf("language response = %+v, want ur", msg)
	}
	msg = read(t, conn)
	if msg.Type != live.TypePage || msg.Page.Title != "سیٹ کا تعارف" {
		t.Fatalf("re-rendered page = %+v, want urdu title", msg)
	}

	if got := prefs.Get("test-session").Language(); got != concept.Urdu {
		t.Errorf("session preference = %s, want ur", got)
	}
}

func TestSession_NotFoundAndErrors(t *testing.T) {
	src := &gatedSource{concepts: map[string]concept.Concept{}}
	conn := startServer(t, src, preference.NewRegistry(concept.English, time.Hour))
	read(t, conn)

	send(t, conn, live.ClientMessage{Type: live.TypeOpen, ConceptID: "missing-id"})
	if msg := read(t, conn); msg.Type != live.TypeNotFound || msg.ConceptID != "missing-id" {
		t.Errorf("response = %+v, want not_found", msg)
	}

	send(t, conn, live.ClientMessage{Type: live.TypeLanguage, Language: "fr"})
	if msg := read(t, conn); msg.Type != live.TypeError {
		t.Errorf("unsupported language response = %+v, want error", msg)
	}

	send(t, conn, live.ClientMessage{Type: "dance"})
	if msg := read(t, conn); msg.Type != live.TypeError {
		t.Errorf("unknown type response = %+v, want error", msg)
	}
}

func TestSession_StaleResponseDropped(t *testing.T) {
	gate := make(chan struct{})
	src := &gatedSource{
		concepts: map[string]concept.Concept{
			"slow": bilingual("slow", "Slow", "سست"),
			"fast": bilingual("fast", "Fast", "تیز"),
		},
		gates: map[string]chan struct{}{"slow": gate},
	}
	conn := startServer(t, src, preference.NewRegistry(concept.English, time.Hour))
	read(t, conn)

	send(t, conn, live.ClientMessage{Type: live.TypeOpen, ConceptID: "slow"})
	send(t, conn, live.ClientMessage{Type: live.TypeOpen, ConceptID: "fast"})

	if msg := read(t, conn); msg.ConceptID != "fast" {
		t.Fatalf("first page = %+v, want fast", msg)
	}

	close(gate)
	time.Sleep(50 * time.Millisecond)

	send(t, conn, live.ClientMessage{Type: live.TypeToggle})
	for range 2 {
		msg := read(t, conn)
		if msg.ConceptID == "slow" {
			t.Fatalf("stale page for slow was delivered: %+v", msg)
		}
	}
}
