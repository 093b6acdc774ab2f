package changetracking_test

import (
	"strings"

	"github.com/AntonStoeckl/entity-change-events-go/changetracking"
)

type category struct {
	name string
}

func (c *category) String() string {
	return "Category: " + c.name
}

func categoryComparer() changetracking.Comparer[*category] {
	return changetracking.ComparerFunc(
		func(x, y *category) bool {
			if x == nil || y == nil {
				return x == y
			}

			return strings.EqualFold(x.name, y.name)
		},
		func(v *category) string {
			if v == nil {
				return ""
			}

			return strings.ToLower(v.name)
		},
	)
}

func caseInsensitive() changetracking.Comparer[string] {
	return changetracking.ComparerFunc(strings.EqualFold, strings.ToLower)
}

func categories(change changetracking.CollectionChange[*category]) (added, removed []string) {
	for _, item := range change.AddedItems() {
		added = append(added, item.name)
	}

	for _, item := range change.RemovedItems() {
		removed = append(removed, item.name)
	}

	return added, removed
}
