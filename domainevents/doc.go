// Package domainevents holds the domain events an entity has recorded but not yet handed out.
//
// An EventLog keeps events in the order they were recorded and indexes them by event type,
// which enables insertion policies beyond a plain append: an event can be recorded only once
// per type, or replace the latest (or every) event of its type.
//
// EntityCreated and EntityChanged are the generic events emitted by entities that track
// their changes with package changetracking.
package domainevents
