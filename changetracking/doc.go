// Package changetracking records what changed on an entity between two points in time.
//
// A change is described per member of the entity: a PropertyChange captures the
// transition of a single value, a CollectionChange captures the items added to and
// removed from a collection. Changes are immutable values; merging two changes for
// the same member yields a new change describing the net effect of both.
//
// A Tracker aggregates the changes of one entity, keyed by member name. Successive
// changes of the same member are merged, and members whose net effect is zero are
// dropped, so a mutation followed by its inverse leaves no trace.
//
// Nothing in this package is safe for concurrent use; each entity owns its Tracker.
package changetracking
