package autocomplete

// Kind classifies a completion candidate.
type Kind string

const (
	KindMethod     Kind = "method"
	KindCollection Kind = "collection"
	KindField      Kind = "field"
	KindOperator   Kind = "operator"
	KindDirection  Kind = "direction"
	KindKeyword    Kind = "keyword"
	KindSnippet    Kind = "snippet"
	KindValue      Kind = "value"
	KindProperty   Kind = "property"
)

// Completion is one candidate. Trigger and Suggestion concatenate (or
// InsertText overrides) to form the inserted text; CursorOffset is added
// to the natural post-insert cursor position and may be negative to
// place the cursor inside the inserted text.
type Completion struct {
	Trigger      string
	Suggestion   string
	CursorOffset int
	Description  string
	FullMatch    string
	Kind         Kind
	Priority     int
	Keywords     []string
	InsertText   string
}

// Text returns the effective inserted text.
func (c Completion) Text() string {
	if c.InsertText != "" {
		return c.InsertText
	}
	return c.Trigger + c.Suggestion
}

// Key returns the deduplication key.
func (c Completion) Key() string {
	if c.FullMatch != "" {
		return c.FullMatch
	}
	return c.Trigger
}

// Catalog returns the static candidate table. It is populated once at
// process start and treated as read-only.
func Catalog() []Completion {
	return staticCatalog
}

var staticCatalog = []Completion{
	// Query root
	{Trigger: "db", Suggestion: "", Kind: KindKeyword, Priority: 10,
		Description: "Database query root", Keywords: []string{"database", "root"}},
	{Trigger: "db", Suggestion: ".collection('').get()", FullMatch: "db.collection('').get()",
		Kind: KindSnippet, CursorOffset: -8, Priority: 8,
		Description: "Fetch all documents of a collection", Keywords: []string{"query", "starter"}},

	// Fluent methods
	{Trigger: ".collection", Suggestion: "('')", FullMatch: ".collection('')", Kind: KindMethod,
		CursorOffset: -2, Description: "Access a collection by name", Keywords: []string{"table"}},
	{Trigger: ".collectionGroup", Suggestion: "('')", FullMatch: ".collectionGroup('')", Kind: KindMethod,
		CursorOffset: -2, Description: "Query every collection with this id", Keywords: []string{"descendants"}},
	{Trigger: ".doc", Suggestion: "('')", FullMatch: ".doc('')", Kind: KindMethod,
		CursorOffset: -2, Description: "Access a document by id", Keywords: []string{"document"}},
	{Trigger: ".where", Suggestion: "('', '==', '')", FullMatch: ".where('', '==', '')", Kind: KindMethod,
		CursorOffset: -12, Description: "Filter documents by a field comparison", Keywords: []string{"filter", "condition"}},
	{Trigger: ".orderBy", Suggestion: "('', 'asc')", FullMatch: ".orderBy('', 'asc')", Kind: KindMethod,
		CursorOffset: -9, Description: "Sort results by a field", Keywords: []string{"sort", "order"}},
	{Trigger: ".select", Suggestion: "('')", FullMatch: ".select('')", Kind: KindMethod,
		CursorOffset: -2, Description: "Project specific fields", Keywords: []string{"projection", "fields"}},
	{Trigger: ".limit", Suggestion: "()", FullMatch: ".limit()", Kind: KindMethod,
		CursorOffset: -1, Description: "Limit the number of results", Keywords: []string{"page", "max"}},
	{Trigger: ".limitToLast", Suggestion: "()", FullMatch: ".limitToLast()", Kind: KindMethod,
		CursorOffset: -1, Description: "Limit to the last results in order"},
	{Trigger: ".offset", Suggestion: "()", FullMatch: ".offset()", Kind: KindMethod,
		CursorOffset: -1, Description: "Skip results before returning", Keywords: []string{"skip"}},
	{Trigger: ".startAt", Suggestion: "()", FullMatch: ".startAt()", Kind: KindMethod,
		CursorOffset: -1, Description: "Start results at a cursor value", Keywords: []string{"cursor"}},
	{Trigger: ".startAfter", Suggestion: "()", FullMatch: ".startAfter()", Kind: KindMethod,
		CursorOffset: -1, Description: "Start results after a cursor value", Keywords: []string{"cursor"}},
	{Trigger: ".endAt", Suggestion: "()", FullMatch: ".endAt()", Kind: KindMethod,
		CursorOffset: -1, Description: "End results at a cursor value", Keywords: []string{"cursor"}},
	{Trigger: ".endBefore", Suggestion: "()", FullMatch: ".endBefore()", Kind: KindMethod,
		CursorOffset: -1, Description: "End results before a cursor value", Keywords: []string{"cursor"}},
	{Trigger: ".get", Suggestion: "()", FullMatch: ".get()", Kind: KindMethod,
		Description: "Execute the query", Keywords: []string{"run", "fetch", "execute"}},
	{Trigger: ".add", Suggestion: "({})", FullMatch: ".add({})", Kind: KindMethod,
		CursorOffset: -2, Description: "Add a document with a generated id", Keywords: []string{"create", "insert"}},
	{Trigger: ".set", Suggestion: "({})", FullMatch: ".set({})", Kind: KindMethod,
		CursorOffset: -2, Description: "Write a document, replacing existing data", Keywords: []string{"write", "replace"}},
	{Trigger: ".update", Suggestion: "({})", FullMatch: ".update({})", Kind: KindMethod,
		CursorOffset: -2, Description: "Merge fields into an existing document", Keywords: []string{"merge", "patch"}},
	{Trigger: ".delete", Suggestion: "()", FullMatch: ".delete()", Kind: KindMethod,
		Description: "Delete a document", Keywords: []string{"remove"}},
	{Trigger: ".count", Suggestion: "()", FullMatch: ".count()", Kind: KindMethod,
		Description: "Count matching documents", Keywords: []string{"aggregate"}},
	{Trigger: ".onSnapshot", Suggestion: "()", FullMatch: ".onSnapshot()", Kind: KindMethod,
		CursorOffset: -1, Description: "Subscribe to live query results", Keywords: []string{"listen", "realtime"}},
	{Trigger: ".stream", Suggestion: "()", FullMatch: ".stream()", Kind: KindMethod,
		Description: "Stream matching documents"},
	{Trigger: ".batch", Suggestion: "()", FullMatch: ".batch()", Kind: KindMethod,
		Description: "Start a write batch"},
	{Trigger: ".runTransaction", Suggestion: "()", FullMatch: ".runTransaction()", Kind: KindMethod,
		CursorOffset: -1, Description: "Run reads and writes atomically", Keywords: []string{"atomic"}},
	{Trigger: ".withConverter", Suggestion: "()", FullMatch: ".withConverter()", Kind: KindMethod,
		CursorOffset: -1, Description: "Attach a data converter"},
	{Trigger: ".listDocuments", Suggestion: "()", FullMatch: ".listDocuments()", Kind: KindMethod,
		Description: "List document references"},
	{Trigger: ".listCollections", Suggestion: "()", FullMatch: ".listCollections()", Kind: KindMethod,
		Description: "List subcollections"},

	// Comparison operators (second where argument)
	{Trigger: "'=='", Kind: KindOperator, Description: "Equal to"},
	{Trigger: "'!='", Kind: KindOperator, Description: "Not equal to"},
	{Trigger: "'<'", Kind: KindOperator, Description: "Less than"},
	{Trigger: "'<='", Kind: KindOperator, Description: "Less than or equal to"},
	{Trigger: "'>'", Kind: KindOperator, Description: "Greater than"},
	{Trigger: "'>='", Kind: KindOperator, Description: "Greater than or equal to"},
	{Trigger: "'array-contains'", Kind: KindOperator, Description: "Array field contains the value"},
	{Trigger: "'array-contains-any'", Kind: KindOperator, Description: "Array field contains any listed value"},
	{Trigger: "'in'", Kind: KindOperator, Description: "Field value is in the list"},
	{Trigger: "'not-in'", Kind: KindOperator, Description: "Field value is not in the list"},

	// Sort directions (second orderBy argument)
	{Trigger: "'asc'", Kind: KindDirection, Description: "Ascending order"},
	{Trigger: "'desc'", Kind: KindDirection, Description: "Descending order"},

	// Literal values
	{Trigger: "true", Kind: KindValue, Description: "Boolean true"},
	{Trigger: "false", Kind: KindValue, Description: "Boolean false"},
	{Trigger: "null", Kind: KindValue, Description: "Null value"},
}

// methodBoosts is a fixed per-method priority table, keyed by a
// candidate's FullMatch or Trigger.
var methodBoosts = map[string]int{
	".where":      40,
	".orderBy":    35,
	".get":        32,
	".collection": 30,
	".limit":      28,
	".select":     25,
	".doc":        22,
	".add":        18,
	".set":        18,
	".update":     18,
	".delete":     18,
}
