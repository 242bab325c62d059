package b2contact

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrB2Precondition matches every construction failure of the contact solver.
// They all mean the caller handed over something the solver must never see.
var ErrB2Precondition = errors.New("contact solver precondition violated")

var (
	ErrB2NonSolidContact = errors.New("contact is not solid")
	ErrB2EmptyManifold   = errors.New("manifold has no points")
	ErrB2TooManyPoints   = errors.New("manifold has more points than B2_maxManifoldPoints")
	ErrB2DegenerateMass  = errors.New("degenerate effective mass")
	ErrB2InvalidBody     = errors.New("body handle out of range")
	ErrB2InvalidSettings = errors.New("invalid solver settings")
)

// B2PreconditionError locates a construction failure. Contact, Pair and Point
// are -1 when the failure is not tied to one of them.
type B2PreconditionError struct {
	Contact int
	Pair    int
	Point   int
	Reason  error
}

func newB2PreconditionError(contact, pair, point int, reason error) error {
	return errors.WithStack(&B2PreconditionError{
		Contact: contact,
		Pair:    pair,
		Point:   point,
		Reason:  reason,
	})
}

func (e *B2PreconditionError) Error() string {
	return fmt.Sprintf("%v: contact %d pair %d point %d: %v", ErrB2Precondition, e.Contact, e.Pair, e.Point, e.Reason)
}

func (e *B2PreconditionError) Unwrap() error {
	return e.Reason
}

func (e *B2PreconditionError) Is(target error) bool {
	return target == ErrB2Precondition
}
