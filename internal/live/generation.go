// Package live serves concept pages over a WebSocket so a client can switch
// concepts and languages without reloading.
package live

import "sync"

// Generation issues request tokens. Only the response for the most recently
// issued token is delivered; older responses are dropped.
type Generation struct {
	mu      sync.Mutex
	current uint64
}

// Next issues a new token, making every earlier token stale.
func (g *Generation) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

// IsCurrent reports whether token is the latest issued.
func (g *Generation) IsCurrent(token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return token == g.current
}

// Deliver runs fn if token is still current and reports whether it ran. No
// newer token can be issued while fn runs.
func (g *Generation) Deliver(token uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != g.current {
		return false
	}
	fn()
	return true
}
