// Package notify holds the queue of transient on-screen messages.
package notify

import (
	"time"
)

const (
	DefaultDuration = 3 * time.Second
	MaxVisible      = 5

	fadeDuration = 500 * time.Millisecond
)

type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

type Notification struct {
	Message   string
	Severity  Severity
	CreatedAt time.Time
	Duration  time.Duration
}

// Opacity fades in over the first half second, holds at 1 and fades out over
// the last half second. The result is clamped to [0, 1].
func (n Notification) Opacity(now time.Time) float64 {
	elapsed := now.Sub(n.CreatedAt)
	if elapsed < 0 {
		return 0
	}

	var opacity float64
	switch {
	case elapsed < fadeDuration:
		opacity = float64(elapsed) / float64(fadeDuration)
	case elapsed > n.Duration-fadeDuration:
		opacity = float64(n.Duration-elapsed) / float64(fadeDuration)
	default:
		opacity = 1
	}

	return clamp(opacity)
}

func (n Notification) Expired(now time.Time) bool {
	return now.Sub(n.CreatedAt) > n.Duration
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Sink is a bounded FIFO of notifications. It is not safe for concurrent use.
type Sink struct {
	items    []Notification
	now      func() time.Time
	duration time.Duration
	capacity int
}

type Option func(*Sink)

// WithClock replaces time.Now as the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

func WithDuration(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.duration = d
		}
	}
}

func NewSink(opts ...Option) *Sink {
	s := &Sink{
		now:      time.Now,
		duration: DefaultDuration,
		capacity: MaxVisible,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends a notification, evicting the oldest when the queue is full.
func (s *Sink) Push(message string, severity Severity) {
	s.items = append(s.items, Notification{
		Message:   message,
		Severity:  severity,
		CreatedAt: s.now(),
		Duration:  s.duration,
	})

	if over := len(s.items) - s.capacity; over > 0 {
		s.items = append(s.items[:0], s.items[over:]...)
	}
}

func (s *Sink) Info(message string)    { s.Push(message, Info) }
func (s *Sink) Success(message string) { s.Push(message, Success) }
func (s *Sink) Warning(message string) { s.Push(message, Warning) }
func (s *Sink) Error(message string)   { s.Push(message, Error) }

// Tick drops every expired notification.
func (s *Sink) Tick(now time.Time) {
	kept := s.items[:0]
	for _, n := range s.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	s.items = kept
}

// Snapshot returns the live notifications oldest first.
func (s *Sink) Snapshot() []Notification {
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Sink) Len() int {
	return len(s.items)
}
