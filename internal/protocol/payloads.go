package protocol

// EditorConfig carries rendering hints the engine pushes with each update.
type EditorConfig struct {
	HighlightWhitespace bool `json:"highlightWhitespace"`
	HighlightIndent     bool `json:"highlightIndent"`
}

type Token struct {
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Type       string `json:"type"`
}

type Diagnostic struct {
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Code       string `json:"code,omitempty"`
}

// Update is the unsolicited snapshot push that follows every updateText.
type Update struct {
	Version     uint64       `json:"version"`
	Tokens      []Token      `json:"tokens"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Config      EditorConfig `json:"config"`
}

// IndexParams is the payload of hover, definition, occurrences and
// completions requests.
type IndexParams struct {
	Index int `json:"index"`
}

// BoundaryParams is the payload of getNextWordBoundary.
type BoundaryParams struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

type HoverResult struct {
	Content string `json:"content"`
}

// Location answers both getDefinitionLocation and getNextWordBoundary.
type Location struct {
	TargetIndex int `json:"targetIndex"`
}

type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

type CompletionItem struct {
	Label      string `json:"label"`
	Type       string `json:"type"`
	Detail     string `json:"detail,omitempty"`
	InsertText string `json:"insertText,omitempty"`
}
