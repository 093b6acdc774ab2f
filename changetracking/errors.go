package changetracking

import "errors"

// ErrMemberMismatch is returned when two changes describing different members are merged.
var ErrMemberMismatch = errors.New("member names of merged changes do not match")

// ErrTrackerConflict is returned when a member is already tracked with a change of a different kind.
var ErrTrackerConflict = errors.New("member is already tracked with a different kind of change")
