package getusers

const queryType = "GetUsers"

// Query represents the intent to list all users.
type Query struct{}

// QueryType returns the type of this query for observability and routing purposes.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}
