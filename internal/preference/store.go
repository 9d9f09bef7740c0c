// Package preference holds the learner's active content language. Each client
// session owns one observable Store; the Registry maps session ids to stores.
package preference

import (
	"fmt"
	"sync"

	"github.com/p-n-ai/taleem/internal/concept"
)

// Store is a single observable language value. Writes are last-write-wins and
// never block on slow subscribers.
type Store struct {
	mu   sync.RWMutex
	lang concept.Language
	subs map[int]chan concept.Language
	next int
}

// NewStore creates a store holding initial, or English when initial is not supported.
func NewStore(initial concept.Language) *Store {
	if !initial.Supported() {
		initial = concept.English
	}
	return &Store{lang: initial, subs: make(map[int]chan concept.Language)}
}

// Language returns the current language.
func (s *Store) Language() concept.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage replaces the current language and notifies subscribers when it changed.
func (s *Store) SetLanguage(lang concept.Language) error {
	if !lang.Supported() {
		return fmt.Errorf("unsupported language %q", lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lang == lang {
		return nil
	}
	s.lang = lang
	s.notify(lang)
	return nil
}

// Toggle switches between English and Urdu and returns the new language.
func (s *Store) Toggle() concept.Language {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lang == concept.Urdu {
		s.lang = concept.English
	} else {
		s.lang = concept.Urdu
	}
	s.notify(s.lang)
	return s.lang
}

// Subscribe returns a channel that receives the language after each change.
// Only the latest undelivered value is kept. cancel closes the channel.
func (s *Store) Subscribe() (updates <-chan concept.Language, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan concept.Language, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of open subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// notify must be called with s.mu held for writing.
func (s *Store) notify(lang concept.Language) {
	for _, ch := range s.subs {
		select {
		case ch <- lang:
		default:
			// Drop the stale value so the subscriber sees the latest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- lang:
			default:
			}
		}
	}
}
