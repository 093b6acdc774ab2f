package changetracking

import "fmt"

// CollectionChange describes the items added to and removed from a collection.
//
// Items are deduplicated by the comparer and keep their first insertion order.
type CollectionChange[T comparable] struct {
	memberName string
	comparer   Comparer[T]
	added      itemSet[T]
	removed    itemSet[T]
}

// NewCollectionChange creates a CollectionChange. A nil comparer falls back to DefaultComparer.
//
// It panics when collectionName is empty.
func NewCollectionChange[T comparable](collectionName string, added, removed []T, comparer Comparer[T]) CollectionChange[T] {
	mustHaveMemberName(collectionName)

	if comparer == nil {
		comparer = DefaultComparer[T]()
	}

	return CollectionChange[T]{
		memberName: collectionName,
		comparer:   comparer,
		added:      newItemSet(comparer, added),
		removed:    newItemSet(comparer, removed),
	}
}

func (c CollectionChange[T]) MemberName() string {
	return c.memberName
}

func (c CollectionChange[T]) Comparer() Comparer[T] {
	if c.comparer == nil {
		return DefaultComparer[T]()
	}

	return c.comparer
}

// AddedItems returns a copy of the added items in insertion order.
func (c CollectionChange[T]) AddedItems() []T {
	return c.added.snapshot()
}

// RemovedItems returns a copy of the removed items in insertion order.
func (c CollectionChange[T]) RemovedItems() []T {
	return c.removed.snapshot()
}

func (c CollectionChange[T]) ContainsAdded(item T) bool {
	return c.added.contains(item)
}

func (c CollectionChange[T]) ContainsRemoved(item T) bool {
	return c.removed.contains(item)
}

// NoChanges reports whether the added and the removed items are the same set.
func (c CollectionChange[T]) NoChanges() bool {
	return c.added.setEquals(c.removed)
}

func (c CollectionChange[T]) Kind() string {
	return kindOf[T]("collection")
}

// Merge returns the net effect of c followed by other.
//
// Both unions are taken first, then every item present in both unions cancels out.
// The result does not depend on the order in which adds and removes were recorded.
func (c CollectionChange[T]) Merge(other CollectionChange[T]) (CollectionChange[T], error) {
	if c.memberName != other.memberName {
		return c, memberMismatchError(c.memberName, other.memberName)
	}

	comparer := c.Comparer()
	addedUnion := newItemSet(comparer, c.added.items, other.added.items)
	removedUnion := newItemSet(comparer, c.removed.items, other.removed.items)

	return CollectionChange[T]{
		memberName: c.memberName,
		comparer:   comparer,
		added:      addedUnion.except(removedUnion),
		removed:    removedUnion.except(addedUnion),
	}, nil
}

func (c CollectionChange[T]) Describe() string {
	if c.NoChanges() {
		return noChangesDescription
	}

	return fmt.Sprintf(
		"%s changed: added [%s], removed [%s]",
		c.memberName,
		joinDisplayStrings(c.added.items),
		joinDisplayStrings(c.removed.items),
	)
}

func (c CollectionChange[T]) String() string {
	return c.Describe()
}

func (c CollectionChange[T]) mergeWith(other MemberChange) (MemberChange, error) {
	next, ok := other.(CollectionChange[T])
	if !ok {
		return nil, trackerConflictError(c, other)
	}

	merged, err := c.Merge(next)
	if err != nil {
		return nil, err
	}

	return merged, nil
}
