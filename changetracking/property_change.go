package changetracking

import "fmt"

// PropertyChange describes the transition of a single value from OldValue to NewValue.
type PropertyChange[T comparable] struct {
	memberName string
	comparer   Comparer[T]
	oldValue   T
	newValue   T
}

// NewPropertyChange creates a PropertyChange. A nil comparer falls back to DefaultComparer.
//
// It panics when propertyName is empty.
func NewPropertyChange[T comparable](propertyName string, oldValue, newValue T, comparer Comparer[T]) PropertyChange[T] {
	mustHaveMemberName(propertyName)

	if comparer == nil {
		comparer = DefaultComparer[T]()
	}

	return PropertyChange[T]{
		memberName: propertyName,
		comparer:   comparer,
		oldValue:   oldValue,
		newValue:   newValue,
	}
}

func (c PropertyChange[T]) MemberName() string {
	return c.memberName
}

func (c PropertyChange[T]) OldValue() T {
	return c.oldValue
}

func (c PropertyChange[T]) NewValue() T {
	return c.newValue
}

func (c PropertyChange[T]) Comparer() Comparer[T] {
	if c.comparer == nil {
		return DefaultComparer[T]()
	}

	return c.comparer
}

func (c PropertyChange[T]) NoChanges() bool {
	return c.Comparer().Equal(c.oldValue, c.newValue)
}

func (c PropertyChange[T]) Kind() string {
	return kindOf[T]("property")
}

// Merge returns a change from the old value of c to the new value of other.
// Neither operand is modified.
func (c PropertyChange[T]) Merge(other PropertyChange[T]) (PropertyChange[T], error) {
	if c.memberName != other.memberName {
		return c, memberMismatchError(c.memberName, other.memberName)
	}

	merged := c
	merged.newValue = other.newValue

	return merged, nil
}

func (c PropertyChange[T]) Describe() string {
	if c.NoChanges() {
		return noChangesDescription
	}

	return fmt.Sprintf(
		"%s changed from %s to %s",
		c.memberName,
		DisplayString(c.oldValue),
		DisplayString(c.newValue),
	)
}

func (c PropertyChange[T]) String() string {
	return c.Describe()
}

func (c PropertyChange[T]) mergeWith(other MemberChange) (MemberChange, error) {
	next, ok := other.(PropertyChange[T])
	if !ok {
		return nil, trackerConflictError(c, other)
	}

	merged, err := c.Merge(next)
	if err != nil {
		return nil, err
	}

	return merged, nil
}
