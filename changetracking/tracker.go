package changetracking

import "slices"

// Tracker aggregates the member changes of one entity.
//
// The zero value is ready to use.
type Tracker struct {
	changes map[string]MemberChange
	order   []string
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{changes: make(map[string]MemberChange)}
}

// Add records a change.
//
// A change for an untracked member is stored unless it has no net effect. A change for a
// tracked member is merged into the tracked one; when the merge result has no net effect
// the member is dropped. A change of a different kind than the tracked one fails with
// ErrTrackerConflict and leaves the tracked change in place.
func (t *Tracker) Add(change MemberChange) error {
	if change == nil {
		return nil
	}

	if t.changes == nil {
		t.changes = make(map[string]MemberChange)
	}

	memberName := change.MemberName()

	tracked, found := t.changes[memberName]
	if !found {
		if change.NoChanges() {
			return nil
		}

		t.changes[memberName] = change
		t.order = append(t.order, memberName)

		return nil
	}

	merged, err := tracked.mergeWith(change)
	if err != nil {
		return err
	}

	if merged.NoChanges() {
		t.drop(memberName)

		return nil
	}

	t.changes[memberName] = merged

	return nil
}

// Changes returns the tracked changes ordered by the first introduction of their member.
// The returned slice is a copy.
func (t *Tracker) Changes() []MemberChange {
	changes := make([]MemberChange, 0, len(t.order))
	for _, memberName := range t.order {
		changes = append(changes, t.changes[memberName])
	}

	return changes
}

// Change returns the tracked change of a member.
func (t *Tracker) Change(memberName string) (MemberChange, bool) {
	change, found := t.changes[memberName]

	return change, found
}

func (t *Tracker) HasChanges() bool {
	return len(t.order) > 0
}

func (t *Tracker) Len() int {
	return len(t.order)
}

// Clear drops all tracked changes.
func (t *Tracker) Clear() {
	clear(t.changes)
	t.order = t.order[:0]
}

func (t *Tracker) drop(memberName string) {
	delete(t.changes, memberName)

	if index := slices.Index(t.order, memberName); index >= 0 {
		t.order = slices.Delete(t.order, index, index+1)
	}
}
