// Package query extracts structured query parameters from fluent
// expression text and builds the wire-format structured query consumed
// by the remote document query protocol.
package query

import "github.com/wayli-app/firelens/internal/wire"

// Operator represents comparison operators as written in expressions
type Operator string

const (
	OpEqual            Operator = "=="
	OpNotEqual         Operator = "!="
	OpLessThan         Operator = "<"
	OpLessOrEqual      Operator = "<="
	OpGreaterThan      Operator = ">"
	OpGreaterOrEqual   Operator = ">="
	OpArrayContains    Operator = "array-contains"
	OpArrayContainsAny Operator = "array-contains-any"
	OpIn               Operator = "in"
	OpNotIn            Operator = "not-in"
)

// Direction represents sort direction
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// WhereCondition represents a single where clause
type WhereCondition struct {
	Field    string
	Operator Operator
	Value    wire.Dynamic
}

// OrderByConfig represents an orderBy clause
type OrderByConfig struct {
	Field     string
	Direction Direction
}

// Params represents the query parameters extracted from an expression
type Params struct {
	Collection     string
	AllDescendants bool // collectionGroup instead of collection
	Limit          int
	Offset         int
	Select         []string
	Where          []WhereCondition
	OrderBy        *OrderByConfig
}
