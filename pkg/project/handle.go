package project

import "github.com/google/uuid"

// Handle identifies an entity independently of its memory address.
type Handle uuid.UUID

func newHandle() Handle { return Handle(uuid.New()) }

// String returns the canonical UUID text.
func (h Handle) String() string { return uuid.UUID(h).String() }

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool { return h == Handle(uuid.Nil) }
