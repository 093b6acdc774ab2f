package core

import (
	"hash/maphash"
	"strings"

	"github.com/AntonStoeckl/entity-change-events-go/changetracking"
)

// persistable is implemented by entities that receive their ID from persistence.
type persistable interface {
	comparable
	ID() int64
}

var entitySeed = maphash.MakeSeed()

// entityComparer treats entities as equal when they are the same instance or when both are
// persisted with the same ID. Transient entities are only equal to themselves.
//
// Transient entities share one hash bucket, so an entity must not be assigned an ID while
// it is held in a change.
type entityComparer[E persistable] struct{}

func (entityComparer[E]) Equal(x, y E) bool {
	var absent E

	if x == y {
		return true
	}

	if x == absent || y == absent {
		return false
	}

	if x.ID() == 0 || y.ID() == 0 {
		return false
	}

	return x.ID() == y.ID()
}

func (entityComparer[E]) Hash(v E) uint64 {
	var absent E

	if v == absent || v.ID() == 0 {
		return 0
	}

	return maphash.Comparable(entitySeed, v.ID())
}

// AuthenticationComparer compares authentications by identity.
func AuthenticationComparer() changetracking.Comparer[*Authentication] {
	return entityComparer[*Authentication]{}
}

// AccessRightComparer compares access rights by application code and application user ID, ignoring case.
func AccessRightComparer() changetracking.Comparer[*AccessRight] {
	return changetracking.ComparerFunc(
		func(x, y *AccessRight) bool {
			if x == y {
				return true
			}

			if x == nil || y == nil {
				return false
			}

			return strings.EqualFold(applicationCodeOf(x), applicationCodeOf(y)) &&
				strings.EqualFold(x.applicationUserID, y.applicationUserID)
		},
		func(v *AccessRight) string {
			if v == nil {
				return ""
			}

			return strings.ToLower(applicationCodeOf(v)) + "\x00" + strings.ToLower(v.applicationUserID)
		},
	)
}

func applicationCodeOf(accessRight *AccessRight) string {
	if accessRight.application == nil {
		return ""
	}

	return accessRight.application.code
}

// ApplicationComparer compares applications by code, ignoring case.
func ApplicationComparer() changetracking.Comparer[*Application] {
	return changetracking.ComparerFunc(
		func(x, y *Application) bool {
			if x == y {
				return true
			}

			if x == nil || y == nil {
				return false
			}

			return strings.EqualFold(x.code, y.code)
		},
		func(v *Application) string {
			if v == nil {
				return ""
			}

			return strings.ToLower(v.code)
		},
	)
}

// UserComparer compares users by object ID.
func UserComparer() changetracking.Comparer[*User] {
	return changetracking.ComparerFunc(
		func(x, y *User) bool {
			if x == y {
				return true
			}

			if x == nil || y == nil {
				return false
			}

			return x.objectID == y.objectID
		},
		func(v *User) string {
			if v == nil {
				return ""
			}

			return v.objectID.String()
		},
	)
}
