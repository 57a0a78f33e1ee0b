package query

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/wayli-app/firelens/internal/wire"
)

// StructuredQuery is the wire-format query tree sent to the remote
// query protocol. Field names match the protocol JSON exactly.
type StructuredQuery struct {
	From    []CollectionSelector `json:"from"`
	Select  *Projection          `json:"select,omitempty"`
	Where   *Filter              `json:"where,omitempty"`
	OrderBy []Order              `json:"orderBy,omitempty"`
	Offset  int                  `json:"offset,omitempty"`
	Limit   int                  `json:"limit"`
}

// CollectionSelector identifies the collection a query reads from.
type CollectionSelector struct {
	CollectionID   string `json:"collectionId"`
	AllDescendants bool   `json:"allDescendants,omitempty"`
}

// Projection lists the fields to return.
type Projection struct {
	Fields []FieldReference `json:"fields"`
}

// FieldReference names a document field by path.
type FieldReference struct {
	FieldPath string `json:"fieldPath"`
}

// Filter is the where node: exactly one of FieldFilter or
// CompositeFilter is populated.
type Filter struct {
	FieldFilter     *FieldFilter     `json:"fieldFilter,omitempty"`
	CompositeFilter *CompositeFilter `json:"compositeFilter,omitempty"`
}

// FieldFilter is a single-field comparison.
type FieldFilter struct {
	Field FieldReference `json:"field"`
	Op    string         `json:"op"`
	Value wire.Value     `json:"value"`
}

// CompositeFilter combines several field filters under one boolean
// operator. The expression grammar has no OR, so Op is always AND.
type CompositeFilter struct {
	Op      string   `json:"op"`
	Filters []Filter `json:"filters"`
}

// Order is a single orderBy entry.
type Order struct {
	Field     FieldReference `json:"field"`
	Direction string         `json:"direction"`
}

// Protocol operator names for each expression operator.
var wireOperators = map[Operator]string{
	OpEqual:            "EQUAL",
	OpNotEqual:         "NOT_EQUAL",
	OpLessThan:         "LESS_THAN",
	OpLessOrEqual:      "LESS_THAN_OR_EQUAL",
	OpGreaterThan:      "GREATER_THAN",
	OpGreaterOrEqual:   "GREATER_THAN_OR_EQUAL",
	OpArrayContains:    "ARRAY_CONTAINS",
	OpArrayContainsAny: "ARRAY_CONTAINS_ANY",
	OpIn:               "IN",
	OpNotIn:            "NOT_IN",
}

// Build converts extracted query parameters into the wire-format
// structured query. A single where condition is emitted as a bare
// fieldFilter; two or more are wrapped in one AND compositeFilter.
func Build(params *Params) *StructuredQuery {
	sq := &StructuredQuery{
		From: []CollectionSelector{{
			CollectionID:   collectionID(params.Collection),
			AllDescendants: params.AllDescendants,
		}},
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	if len(params.Select) > 0 {
		fields := make([]FieldReference, len(params.Select))
		for i, field := range params.Select {
			fields[i] = FieldReference{FieldPath: field}
		}
		sq.Select = &Projection{Fields: fields}
	}

	switch {
	case len(params.Where) == 1:
		filter := fieldFilter(params.Where[0])
		sq.Where = &filter
	case len(params.Where) > 1:
		filters := make([]Filter, len(params.Where))
		for i, cond := range params.Where {
			filters[i] = fieldFilter(cond)
		}
		sq.Where = &Filter{CompositeFilter: &CompositeFilter{
			Op:      "AND",
			Filters: filters,
		}}
	}

	if params.OrderBy != nil {
		direction := "ASCENDING"
		if strings.EqualFold(string(params.OrderBy.Direction), string(DirectionDesc)) {
			direction = "DESCENDING"
		}
		sq.OrderBy = []Order{{
			Field:     FieldReference{FieldPath: params.OrderBy.Field},
			Direction: direction,
		}}
	}

	return sq
}

func fieldFilter(cond WhereCondition) Filter {
	op, ok := wireOperators[cond.Operator]
	if !ok {
		// Permissive fallback: the editor feeds us in-progress text.
		log.Debug().
			Str("operator", string(cond.Operator)).
			Msg("Unknown comparison operator, falling back to equality")
		op = "EQUAL"
	}
	return Filter{FieldFilter: &FieldFilter{
		Field: FieldReference{FieldPath: cond.Field},
		Op:    op,
		Value: wire.Encode(cond.Value),
	}}
}

// collectionID returns the final path segment of a collection reference.
// A value containing '/' is treated as a path; only the last segment is
// the collection id.
func collectionID(collection string) string {
	if idx := strings.LastIndex(collection, "/"); idx >= 0 {
		return collection[idx+1:]
	}
	return collection
}
