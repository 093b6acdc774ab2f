package changetracking

import (
	"errors"
	"fmt"
	"reflect"
)

// MemberChange describes the change of a single member of an entity.
//
// The variants are PropertyChange and CollectionChange. Only this package can
// define variants, since the Tracker relies on merging them.
type MemberChange interface {
	// MemberName is the name of the changed member. It is never empty.
	MemberName() string

	// NoChanges reports whether the change has no net effect.
	NoChanges() bool

	// Describe renders the change for humans.
	Describe() string

	// Kind names the variant together with its element type, e.g. "property[string]".
	Kind() string

	mergeWith(other MemberChange) (MemberChange, error)
}

func mustHaveMemberName(memberName string) {
	if memberName == "" {
		panic("changetracking: member name must not be empty")
	}
}

func kindOf[T any](variant string) string {
	return fmt.Sprintf("%s[%s]", variant, reflect.TypeFor[T]())
}

func memberMismatchError(memberName, otherMemberName string) error {
	return errors.Join(
		ErrMemberMismatch,
		fmt.Errorf("this change tracks member '%s' but the other change tracks '%s'", memberName, otherMemberName),
	)
}

func trackerConflictError(tracked, incoming MemberChange) error {
	return errors.Join(
		ErrTrackerConflict,
		fmt.Errorf(
			"member '%s' is tracked as %s but the new change is %s",
			tracked.MemberName(),
			tracked.Kind(),
			incoming.Kind(),
		),
	)
}
