package autocomplete

import (
	"sort"
	"strings"
)

const (
	// maxSuggestions caps the ranked result list.
	maxSuggestions = 14

	// descriptionWeight discounts matches against the description text
	// relative to trigger, fullMatch and keyword matches.
	descriptionWeight = 0.6
)

// Generator supplies data-driven candidates (live collection and field
// names known to the host UI). It is called synchronously on every
// ranking pass and must not block.
type Generator func(Context) []Completion

// Ranker merges the static catalog with generated candidates and ranks
// them against the current trigger and cursor context.
type Ranker struct {
	catalog  []Completion
	generate Generator
}

// NewRanker creates a ranker over a static catalog and an optional
// dynamic candidate generator.
func NewRanker(catalog []Completion, generate Generator) *Ranker {
	return &Ranker{catalog: catalog, generate: generate}
}

type scored struct {
	c     Completion
	score float64
}

// Rank returns the deduplicated candidate list ordered by score, capped
// at maxSuggestions. It is a pure function of its inputs: identical
// inputs always produce an identical ordered list.
func (r *Ranker) Rank(trigger string, ctx Context) []Completion {
	// With no partial token, only proceed when the context still
	// implies intent.
	if trigger == "" && ctx.MethodCall == nil && !ctx.IsInString &&
		!ctx.IsAfterDot && !ctx.IsLineEmpty {
		return nil
	}

	pool := make([]Completion, 0, len(r.catalog)+16)
	pool = append(pool, r.catalog...)
	if r.generate != nil {
		pool = append(pool, r.generate(ctx)...)
	}

	// Deduplicate in pool order so ties sort deterministically.
	var ranked []scored
	index := make(map[string]int, len(pool))

	for _, c := range pool {
		var base float64
		if trigger != "" {
			base = baseScore(trigger, c)
		} else {
			base = contextScore(c, ctx)
		}
		if base <= 0 {
			continue
		}
		score := base + float64(c.Priority) + adjust(c, ctx, trigger)

		key := c.Key()
		if i, ok := index[key]; ok {
			if score > ranked[i].score {
				ranked[i] = scored{c: c, score: score}
			}
			continue
		}
		index[key] = len(ranked)
		ranked = append(ranked, scored{c: c, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return len(ranked[i].c.Trigger) > len(ranked[j].c.Trigger)
	})

	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	out := make([]Completion, len(ranked))
	for i, s := range ranked {
		out[i] = s.c
	}
	return out
}

// baseScore is the maximum match score over the candidate's trigger,
// fullMatch and keywords, with description matches discounted.
func baseScore(trigger string, c Completion) float64 {
	best := matchScore(trigger, c.Trigger)
	if c.FullMatch != "" {
		if s := matchScore(trigger, c.FullMatch); s > best {
			best = s
		}
	}
	for _, kw := range c.Keywords {
		if s := matchScore(trigger, kw); s > best {
			best = s
		}
	}
	if c.Description != "" {
		if s := descriptionWeight * matchScore(trigger, c.Description); s > best {
			best = s
		}
	}
	return best
}

// matchScore scores one candidate string against the trigger: exact
// beats prefix beats substring beats subsequence, with a second pass on
// the normalized forms when normalization changes either string.
func matchScore(trigger, candidate string) float64 {
	if trigger == "" || candidate == "" {
		return 0
	}
	t := strings.ToLower(trigger)
	c := strings.ToLower(candidate)

	var score float64
	switch {
	case c == t:
		score = 100
	case strings.HasPrefix(c, t):
		score = 80
	case strings.Contains(c, t):
		score = 50
	case len(t) >= 2 && isSubsequence(t, c):
		score = 30
	}

	nt, nc := normalize(t), normalize(c)
	if nt != "" && (nt != t || nc != c) {
		if nc == nt {
			score += 60
		} else if strings.HasPrefix(nc, nt) {
			score += 40
		}
	}

	return score
}

// normalize strips a leading dot or quote and whitespace so ".whe"
// matches "where" and "'us" matches "users".
func normalize(s string) string {
	return strings.TrimLeft(s, ".'\"` \t")
}

func isSubsequence(needle, haystack string) bool {
	i := 0
	for j := 0; j < len(haystack) && i < len(needle); j++ {
		if haystack[j] == needle[i] {
			i++
		}
	}
	return i == len(needle)
}

// contextScore scores a candidate on the empty-trigger path, where
// intent comes entirely from the cursor context.
func contextScore(c Completion, ctx Context) float64 {
	if ctx.MethodCall != nil {
		if kindExpected(c.Kind, ctx.MethodCall) {
			return 60
		}
		return 0
	}
	if ctx.IsInString {
		if c.Kind == KindCollection || c.Kind == KindField {
			return 55
		}
		return 0
	}
	if ctx.IsAfterDot {
		if c.Kind == KindMethod {
			return 50
		}
		return 0
	}
	if ctx.IsLineEmpty {
		// Snippets surface only on an empty, non-method, non-string,
		// non-dot line.
		switch c.Kind {
		case KindSnippet:
			return 55
		case KindKeyword:
			return 30
		}
	}
	return 0
}

// adjust applies the context-sensitive bonuses and penalties on top of
// the base score.
func adjust(c Completion, ctx Context, trigger string) float64 {
	var score float64

	if ctx.MethodCall != nil && kindExpected(c.Kind, ctx.MethodCall) {
		score += argBonus(ctx.MethodCall)
	}

	if ctx.IsAfterDot || strings.HasPrefix(trigger, ".") {
		switch c.Kind {
		case KindMethod:
			score += 25
		case KindKeyword:
			score -= 8
		}
	}

	if ctx.IsDBAccess && strings.HasPrefix(c.Trigger, queryRoot) {
		score += 20
	}

	quoted := strings.HasPrefix(c.Trigger, "'") || strings.HasPrefix(c.Trigger, `"`)
	if ctx.IsInString {
		if c.Kind == KindCollection || c.Kind == KindField {
			score += 35
		}
		if quoted {
			score += 18
		}
		if c.Kind == KindMethod || c.Kind == KindKeyword {
			score -= 10
		}
	} else if quoted && !expectsStringArg(ctx) {
		score -= 18
	}

	if b, ok := methodBoosts[c.FullMatch]; ok {
		score += float64(b)
	} else if b, ok := methodBoosts[c.Trigger]; ok {
		score += float64(b)
	}

	return score
}

// argBonus is the bonus for the kind expected at a specific
// method-plus-argument position.
func argBonus(call *MethodCall) float64 {
	switch call.Name {
	case "where":
		switch call.ArgIndex {
		case 0:
			return 40
		case 1:
			return 45
		default:
			return 35
		}
	case "orderBy":
		if call.ArgIndex == 1 {
			return 45
		}
		return 40
	case "collection", "collectionGroup", "doc":
		return 45
	case "select":
		return 40
	}
	return 35
}

func kindExpected(kind Kind, call *MethodCall) bool {
	for _, k := range expectedKinds(call.Name, call.ArgIndex) {
		if k == kind {
			return true
		}
	}
	return false
}

func expectedKinds(name string, arg int) []Kind {
	switch name {
	case "where":
		switch arg {
		case 0:
			return []Kind{KindField, KindCollection}
		case 1:
			return []Kind{KindOperator}
		default:
			return []Kind{KindValue}
		}
	case "orderBy":
		if arg == 0 {
			return []Kind{KindField}
		}
		return []Kind{KindDirection}
	case "select":
		return []Kind{KindField}
	case "collection", "collectionGroup", "doc":
		return []Kind{KindCollection}
	case "limit", "limitToLast", "offset":
		return []Kind{KindValue}
	case "startAt", "startAfter", "endAt", "endBefore":
		return []Kind{KindValue, KindField}
	}
	return nil
}

// expectsStringArg reports whether the current argument position takes
// a quoted string, so quote-prefixed candidates are only penalized
// elsewhere.
func expectsStringArg(ctx Context) bool {
	if ctx.MethodCall == nil {
		return false
	}
	switch ctx.MethodCall.Name {
	case "collection", "collectionGroup", "doc", "select", "orderBy", "where":
		return true
	}
	return false
}
