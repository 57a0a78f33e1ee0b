package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayli-app/firelens/internal/wire"
)

func TestParser_Collection(t *testing.T) {
	parser := NewParser("documents", 25)

	tests := []struct {
		name               string
		text               string
		expected           string
		expectedDescendant bool
	}{
		{
			name:     "explicit collection",
			text:     "db.collection('users').get()",
			expected: "users",
		},
		{
			name:     "double quoted",
			text:     `db.collection("orders").get()`,
			expected: "orders",
		},
		{
			name:     "missing collection uses default",
			text:     "db.limit(5).get()",
			expected: "documents",
		},
		{
			name:     "first occurrence wins",
			text:     "db.collection('a').collection('b')",
			expected: "a",
		},
		{
			name:               "collection group",
			text:               "db.collectionGroup('reviews').get()",
			expected:           "reviews",
			expectedDescendant: true,
		},
		{
			name:     "unterminated call uses default",
			text:     "db.collection('use",
			expected: "documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := parser.Parse(tt.text)
			assert.Equal(t, tt.expected, params.Collection)
			assert.Equal(t, tt.expectedDescendant, params.AllDescendants)
		})
	}
}

func TestParser_Limit(t *testing.T) {
	parser := NewParser("documents", 25)

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "explicit limit", text: "db.collection('users').limit(10).get()", expected: 10},
		{name: "missing limit uses default", text: "db.collection('users').get()", expected: 25},
		{name: "unparsable limit uses default", text: "db.collection('users').limit(ten)", expected: 25},
		{name: "zero limit uses default", text: "db.collection('users').limit(0)", expected: 25},
		{name: "negative limit uses default", text: "db.collection('users').limit(-3)", expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.text).Limit)
		})
	}
}

func TestParser_DefaultLimitSanitized(t *testing.T) {
	parser := NewParser("documents", 0)
	assert.Equal(t, fallbackLimit, parser.Parse("db.get()").Limit)
}

func TestParser_Offset(t *testing.T) {
	parser := NewParser("documents", 25)

	assert.Equal(t, 40, parser.Parse("db.collection('users').offset(40).get()").Offset)
	assert.Equal(t, 0, parser.Parse("db.collection('users').get()").Offset)
	assert.Equal(t, 0, parser.Parse("db.collection('users').offset(x)").Offset)
}

func TestParser_Select(t *testing.T) {
	parser := NewParser("documents", 25)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "multiple fields",
			text:     "db.collection('users').select('name', 'email').get()",
			expected: []string{"name", "email"},
		},
		{
			name:     "single field",
			text:     "db.collection('users').select('name')",
			expected: []string{"name"},
		},
		{
			name:     "missing select",
			text:     "db.collection('users').get()",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.text).Select)
		})
	}
}

func TestParser_Where(t *testing.T) {
	parser := NewParser("documents", 25)

	tests := []struct {
		name     string
		text     string
		expected []WhereCondition
	}{
		{
			name: "string value",
			text: "db.collection('users').where('status', '==', 'active')",
			expected: []WhereCondition{
				{Field: "status", Operator: OpEqual, Value: wire.String("active")},
			},
		},
		{
			name: "integer value",
			text: "db.collection('users').where('age', '>=', 21)",
			expected: []WhereCondition{
				{Field: "age", Operator: OpGreaterOrEqual, Value: wire.Integer(21)},
			},
		},
		{
			name: "double value",
			text: "db.collection('items').where('price', '<', 9.99)",
			expected: []WhereCondition{
				{Field: "price", Operator: OpLessThan, Value: wire.Double(9.99)},
			},
		},
		{
			name: "boolean value",
			text: "db.collection('users').where('active', '==', true)",
			expected: []WhereCondition{
				{Field: "active", Operator: OpEqual, Value: wire.Boolean(true)},
			},
		},
		{
			name: "unquoted token kept as raw text",
			text: "db.collection('users').where('owner', '==', currentUser)",
			expected: []WhereCondition{
				{Field: "owner", Operator: OpEqual, Value: wire.String("currentUser")},
			},
		},
		{
			name: "comma inside quoted value",
			text: "db.collection('users').where('name', '==', 'Doe, Jane')",
			expected: []WhereCondition{
				{Field: "name", Operator: OpEqual, Value: wire.String("Doe, Jane")},
			},
		},
		{
			name: "escaped quote inside value",
			text: `db.collection('users').where('note', '==', 'it\'s')`,
			expected: []WhereCondition{
				{Field: "note", Operator: OpEqual, Value: wire.String("it's")},
			},
		},
		{
			name: "multiple clauses preserve source order",
			text: "db.collection('users').where('age', '>', 18).where('city', '==', 'Vienna').where('tags', 'array-contains', 'go')",
			expected: []WhereCondition{
				{Field: "age", Operator: OpGreaterThan, Value: wire.Integer(18)},
				{Field: "city", Operator: OpEqual, Value: wire.String("Vienna")},
				{Field: "tags", Operator: OpArrayContains, Value: wire.String("go")},
			},
		},
		{
			name:     "incomplete clause ignored",
			text:     "db.collection('users').where('age', '>')",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.text).Where)
		})
	}
}

func TestParser_OrderBy(t *testing.T) {
	parser := NewParser("documents", 25)

	tests := []struct {
		name     string
		text     string
		expected *OrderByConfig
	}{
		{
			name:     "explicit asc",
			text:     "db.collection('users').orderBy('name', 'asc')",
			expected: &OrderByConfig{Field: "name", Direction: DirectionAsc},
		},
		{
			name:     "desc",
			text:     "db.collection('users').orderBy('name', 'desc')",
			expected: &OrderByConfig{Field: "name", Direction: DirectionDesc},
		},
		{
			name:     "direction is case-insensitive",
			text:     "db.collection('users').orderBy('name', 'DESC')",
			expected: &OrderByConfig{Field: "name", Direction: DirectionDesc},
		},
		{
			name:     "missing direction defaults to asc",
			text:     "db.collection('users').orderBy('name')",
			expected: &OrderByConfig{Field: "name", Direction: DirectionAsc},
		},
		{
			name:     "missing orderBy",
			text:     "db.collection('users').get()",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.text).OrderBy)
		})
	}
}

func TestParser_Idempotent(t *testing.T) {
	parser := NewParser("documents", 25)
	text := "db.collection('users').where('age', '>=', 21).orderBy('name', 'desc').limit(10).get()"

	first := parser.Parse(text)
	second := parser.Parse(text)

	require.Equal(t, first, second)
}

func TestParser_IgnoresUnknownMethods(t *testing.T) {
	parser := NewParser("documents", 25)
	params := parser.Parse("db.collection('users').withConverter(conv).where('age', '>', 18).get()")

	assert.Equal(t, "users", params.Collection)
	require.Len(t, params.Where, 1)
	assert.Equal(t, "age", params.Where[0].Field)
}
