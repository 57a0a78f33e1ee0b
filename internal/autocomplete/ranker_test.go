package autocomplete

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_ExactMatchBeatsSubstring(t *testing.T) {
	catalog := []Completion{
		{Trigger: "somewhere", Kind: KindField},
		{Trigger: "where", Kind: KindField},
		{Trigger: "elsewhere", Kind: KindField},
	}
	ranker := NewRanker(catalog, nil)

	candidates := ranker.Rank("where", Context{Trigger: "where"})

	require.NotEmpty(t, candidates)
	assert.Equal(t, "where", candidates[0].Trigger)
}

func TestRank_CapAndDedup(t *testing.T) {
	generate := func(ctx Context) []Completion {
		var out []Completion
		for i := 0; i < 30; i++ {
			out = append(out, Completion{
				Trigger: fmt.Sprintf("field%02d", i),
				Kind:    KindField,
			})
		}
		// Duplicate of a static-style candidate with a higher priority.
		out = append(out, Completion{Trigger: "field00", Kind: KindField, Priority: 9})
		return out
	}
	ranker := NewRanker(nil, generate)

	candidates := ranker.Rank("field", Context{Trigger: "field"})

	assert.Len(t, candidates, maxSuggestions)

	seen := make(map[string]bool)
	for _, c := range candidates {
		assert.False(t, seen[c.Key()], "duplicate key %q", c.Key())
		seen[c.Key()] = true
	}

	// The higher-scoring duplicate wins its key.
	assert.Equal(t, "field00", candidates[0].Trigger)
	assert.Equal(t, 9, candidates[0].Priority)
}

func TestRank_EmptyTriggerRequiresIntent(t *testing.T) {
	ranker := NewRanker(Catalog(), nil)

	t.Run("no intent yields nothing", func(t *testing.T) {
		assert.Empty(t, ranker.Rank("", Context{}))
	})

	t.Run("operator argument of where", func(t *testing.T) {
		ctx := Context{MethodCall: &MethodCall{Name: "where", ArgIndex: 1}}
		candidates := ranker.Rank("", ctx)
		require.NotEmpty(t, candidates)
		for _, c := range candidates {
			assert.Equal(t, KindOperator, c.Kind)
		}
	})

	t.Run("direction argument of orderBy", func(t *testing.T) {
		ctx := Context{MethodCall: &MethodCall{Name: "orderBy", ArgIndex: 1}}
		candidates := ranker.Rank("", ctx)
		require.Len(t, candidates, 2)
		assert.Equal(t, KindDirection, candidates[0].Kind)
		assert.Equal(t, KindDirection, candidates[1].Kind)
	})

	t.Run("empty line offers the starter snippet", func(t *testing.T) {
		candidates := ranker.Rank("", Context{IsLineEmpty: true})
		require.NotEmpty(t, candidates)
		assert.Equal(t, KindSnippet, candidates[0].Kind)
	})

	t.Run("after dot offers methods", func(t *testing.T) {
		candidates := ranker.Rank("", Context{IsAfterDot: true})
		require.NotEmpty(t, candidates)
		for _, c := range candidates {
			assert.Equal(t, KindMethod, c.Kind)
		}
	})
}

func TestRank_StringContextFavorsCollections(t *testing.T) {
	generate := func(ctx Context) []Completion {
		return []Completion{
			{Trigger: "'users'", Kind: KindCollection, Description: "users collection"},
			{Trigger: "'user_events'", Kind: KindCollection, Description: "user_events collection"},
		}
	}
	ranker := NewRanker(Catalog(), generate)

	ctx := Context{
		IsInString: true,
		Trigger:    "'users",
		MethodCall: &MethodCall{Name: "collection", ArgIndex: 0},
	}
	candidates := ranker.Rank("'users", ctx)

	require.NotEmpty(t, candidates)
	assert.Equal(t, "'users'", candidates[0].Trigger)
	assert.Equal(t, KindCollection, candidates[0].Kind)
}

func TestRank_DotTriggerFavorsMethods(t *testing.T) {
	ranker := NewRanker(Catalog(), nil)

	candidates := ranker.Rank(".whe", Context{Trigger: ".whe", IsAfterDot: true})

	require.NotEmpty(t, candidates)
	assert.Equal(t, ".where", candidates[0].Trigger)
}

func TestRank_DBRootBoost(t *testing.T) {
	ranker := NewRanker(Catalog(), nil)

	candidates := ranker.Rank("db", Context{Trigger: "db", IsDBAccess: true})

	require.NotEmpty(t, candidates)
	assert.Equal(t, "db", normalize(candidates[0].Trigger))
}

func TestRank_Deterministic(t *testing.T) {
	ranker := NewRanker(Catalog(), nil)
	ctx := Context{Trigger: ".o", IsAfterDot: true}

	first := ranker.Rank(".o", ctx)
	second := ranker.Rank(".o", ctx)

	require.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), maxSuggestions)
}

func TestRank_KeywordAndDescriptionMatches(t *testing.T) {
	ranker := NewRanker(Catalog(), nil)

	t.Run("keyword match surfaces the method", func(t *testing.T) {
		candidates := ranker.Rank("sort", Context{Trigger: "sort"})
		require.NotEmpty(t, candidates)
		assert.Equal(t, ".orderBy", candidates[0].Trigger)
	})

	t.Run("description-only matches are discounted but present", func(t *testing.T) {
		candidates := ranker.Rank("atomic", Context{Trigger: "atomic"})
		require.NotEmpty(t, candidates)
		assert.Equal(t, ".runTransaction", candidates[0].Trigger)
	})
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name      string
		trigger   string
		candidate string
		expected  float64
	}{
		{name: "exact", trigger: "where", candidate: "where", expected: 100},
		{name: "exact case-insensitive", trigger: "WHERE", candidate: "where", expected: 100},
		{name: "prefix", trigger: "whe", candidate: "where", expected: 80},
		{name: "contains", trigger: "here", candidate: "where", expected: 50},
		{name: "subsequence", trigger: "wr", candidate: "where", expected: 30},
		{name: "single char never subsequence", trigger: "x", candidate: "axe", expected: 50},
		{name: "no match", trigger: "zz", candidate: "where", expected: 0},
		{name: "normalized exact", trigger: ".where", candidate: "where", expected: 60},
		{name: "dot prefix against dot candidate", trigger: ".whe", candidate: ".where", expected: 120},
		{name: "quote prefix", trigger: "'us", candidate: "'users'", expected: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchScore(tt.trigger, tt.candidate))
		})
	}
}
