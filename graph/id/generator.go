package id

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces fresh identifiers.
type Generator interface {
	// NewID returns an identifier that has not been returned before.
	NewID() string
}

// UUIDGenerator generates random (version 4) UUID strings.
type UUIDGenerator struct{}

// NewID returns a new random UUID.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence generates predictable identifiers "<prefix>-1", "<prefix>-2", ...
// It is safe for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence creates a sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, n)
}

// Issued returns how many identifiers the sequence has produced.
func (s *Sequence) Issued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next - 1
}
