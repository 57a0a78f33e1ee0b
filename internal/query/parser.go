package query

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/wayli-app/firelens/internal/wire"
)

// fallbackLimit is used when the caller supplies no usable default.
const fallbackLimit = 25

// Parser extracts Params from fluent expression text. It is targeted
// pattern extraction, not a grammar: each clause is located anywhere in
// the text, the first completed occurrence wins per clause type (every
// occurrence for where), and method calls it does not recognize are
// ignored. Parsing never fails; malformed clauses fall back to the
// configured defaults because an in-progress expression is the common
// case in the editor.
type Parser struct {
	defaultCollection string
	defaultLimit      int
}

// NewParser creates a parser with the caller-supplied defaults.
func NewParser(defaultCollection string, defaultLimit int) *Parser {
	if defaultLimit <= 0 {
		defaultLimit = fallbackLimit
	}
	return &Parser{
		defaultCollection: defaultCollection,
		defaultLimit:      defaultLimit,
	}
}

// Parse extracts query parameters from expression text. It is
// idempotent: re-parsing the same text always yields the same Params,
// and multiple where calls preserve source order.
func (p *Parser) Parse(text string) *Params {
	params := &Params{
		Collection: p.defaultCollection,
		Limit:      p.defaultLimit,
	}

	if args, ok := firstCall(text, "collection"); ok && len(args) > 0 {
		if name, ok := unquote(args[0]); ok && name != "" {
			params.Collection = name
		}
	} else if args, ok := firstCall(text, "collectionGroup"); ok && len(args) > 0 {
		if name, ok := unquote(args[0]); ok && name != "" {
			params.Collection = name
			params.AllDescendants = true
		}
	}

	if args, ok := firstCall(text, "limit"); ok && len(args) > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil && n > 0 {
			params.Limit = n
		} else {
			log.Debug().
				Str("argument", args[0]).
				Int("default", p.defaultLimit).
				Msg("Unparsable limit, using default")
		}
	}

	if args, ok := firstCall(text, "offset"); ok && len(args) > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil && n > 0 {
			params.Offset = n
		}
	}

	if args, ok := firstCall(text, "select"); ok {
		for _, arg := range args {
			if field, ok := unquote(arg); ok && field != "" {
				params.Select = append(params.Select, field)
			}
		}
	}

	for _, args := range allCalls(text, "where") {
		if len(args) < 3 {
			continue
		}
		field, ok := unquote(args[0])
		if !ok || field == "" {
			continue
		}
		op, ok := unquote(args[1])
		if !ok {
			continue
		}
		params.Where = append(params.Where, WhereCondition{
			Field:    field,
			Operator: Operator(op),
			Value:    parseValue(args[2]),
		})
	}

	if args, ok := firstCall(text, "orderBy"); ok && len(args) > 0 {
		if field, ok := unquote(args[0]); ok && field != "" {
			direction := DirectionAsc
			if len(args) > 1 {
				if dir, ok := unquote(args[1]); ok && strings.EqualFold(dir, string(DirectionDesc)) {
					direction = DirectionDesc
				}
			}
			params.OrderBy = &OrderByConfig{Field: field, Direction: direction}
		}
	}

	return params
}

// parseValue converts a raw argument token into the dynamic value
// domain: quoted text becomes a string, true/false a boolean, numeric
// literals a number, anything else is kept as the raw token text.
func parseValue(token string) wire.Dynamic {
	token = strings.TrimSpace(token)
	if s, ok := unquote(token); ok {
		return wire.String(s)
	}
	switch token {
	case "true":
		return wire.Boolean(true)
	case "false":
		return wire.Boolean(false)
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return wire.Integer(n)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return wire.Double(f)
	}
	return wire.String(token)
}
