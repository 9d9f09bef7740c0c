// Package quiz grades practice answers and tracks the answered state of a
// single question within a view.
package quiz

import (
	"errors"
	"strings"
	"sync"

	"github.com/p-n-ai/taleem/internal/concept"
)

var (
	ErrEmptyAnswer     = errors.New("answer is empty")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswerable   = errors.New("answer cannot change while answered")
	ErrInvalidOption   = errors.New("question has no such option")
)

// Result is the outcome of grading one answer.
type Result struct {
	IsCorrect bool `json:"isCorrect"`
}

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Evaluate compares answer with the expected answer after normalization.
// Every question type uses the same exact comparison.
func Evaluate(q concept.PracticeQuiz, answer string) Result {
	return Result{IsCorrect: Normalize(answer) == Normalize(q.CorrectAnswer)}
}

// InputShape is how an answer is entered.
type InputShape string

const (
	ShapeChoice InputShape = "choice"
	ShapeText   InputShape = "text"
)

// Shape returns ShapeChoice for multiple-choice questions that list options.
func Shape(q concept.PracticeQuiz) InputShape {
	if q.Type == concept.MultipleChoice && len(q.Options) > 0 {
		return ShapeChoice
	}
	return ShapeText
}

// Feedback is shown after an answer is submitted. CorrectAnswer is only set
// when the answer was wrong.
type Feedback struct {
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// FeedbackFor grades answer and builds the feedback shown for it.
func FeedbackFor(q concept.PracticeQuiz, answer string) Feedback {
	r := Evaluate(q, answer)
	f := Feedback{IsCorrect: r.IsCorrect, Explanation: q.Feedback}
	if !r.IsCorrect {
		f.CorrectAnswer = q.CorrectAnswer
	}
	return f
}

// State is the snapshot of an Attempt.
type State struct {
	Answer   string    `json:"answer"`
	Answered bool      `json:"answered"`
	Feedback *Feedback `json:"feedback,omitempty"`
}

// Attempt is the Unanswered/Answered state of one question. Nothing about an
// attempt is persisted.
type Attempt struct {
	quiz     concept.PracticeQuiz
	answer   string
	feedback *Feedback
	mu       sync.Mutex
}

// NewAttempt starts an unanswered attempt at q.
func NewAttempt(q concept.PracticeQuiz) *Attempt {
	return &Attempt{quiz: q}
}

// SetAnswer replaces the pending answer.
func (a *Attempt) SetAnswer(answer string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.feedback != nil {
		return ErrNotAnswerable
	}
	a.answer = answer
	return nil
}

// SelectOption sets the pending answer to the option at index i.
func (a *Attempt) SelectOption(i int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.feedback != nil {
		return ErrNotAnswerable
	}
	if Shape(a.quiz) != ShapeChoice || i < 0 || i >= len(a.quiz.Options) {
		return ErrInvalidOption
	}
	a.answer = a.quiz.Options[i]
	return nil
}

// Submit grades the pending answer and moves the attempt to Answered.
func (a *Attempt) Submit() (Feedback, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.feedback != nil {
		return Feedback{}, ErrAlreadyAnswered
	}
	if a.answer == "" {
		return Feedback{}, ErrEmptyAnswer
	}
	f := FeedbackFor(a.quiz, a.answer)
	a.feedback = &f
	return f, nil
}

// Reset clears the answer and returns the attempt to Unanswered.
func (a *Attempt) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.answer = ""
	a.feedback = nil
}

// State returns a snapshot of the attempt.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := State{Answer: a.answer, Answered: a.feedback != nil}
	if a.feedback != nil {
		f := *a.feedback
		s.Feedback = &f
	}
	return s
}
