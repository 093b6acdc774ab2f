// Package rehydration gates the paths that rebuild entities from persisted state.
//
// Rebuilding an entity must not record domain events, so those paths bypass the
// regular constructors. Requiring a Token restricts them to packages of this module.
package rehydration

// Token proves that the caller is allowed to rehydrate entities.
type Token struct {
	_ struct{}
}

// Grant returns a Token.
func Grant() Token {
	return Token{}
}
