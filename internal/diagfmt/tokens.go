package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"inkwell/internal/source"
	"inkwell/internal/token"
)

type TokenOutput struct {
	Kind  string         `json:"kind"`
	Text  string         `json:"text"`
	Span  source.Span    `json:"span"`
	Start source.LineCol `json:"start"`
	End   source.LineCol `json:"end"`
}

const maxTokenText = 32

// FormatTokensPretty выводит токены в человекочитаемом формате,
// выравнивая колонки по ширине на экране.
func FormatTokensPretty(w io.Writer, f *source.File, tokens []token.Token, useColor bool) error {
	kindColor := color.New(color.FgCyan)
	if useColor {
		kindColor.EnableColor()
	} else {
		kindColor.DisableColor()
	}

	kindWidth := 0
	for _, tok := range tokens {
		kindWidth = max(kindWidth, len(tok.Kind.String()))
	}
	for i, tok := range tokens {
		startPos, endPos := f.Resolve(tok.Span)
		text := fmt.Sprintf("%q", tok.Text(f.Content))
		text = runewidth.Truncate(text, maxTokenText, "…")
		kind := kindColor.Sprint(runewidth.FillRight(tok.Kind.String(), kindWidth))
		_, err := fmt.Fprintf(w, "%3d: %s %s at %d:%d-%d:%d\n",
			i+1, kind, runewidth.FillRight(text, maxTokenText),
			startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, f *source.File, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		startPos, endPos := f.Resolve(tok.Span)
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text(f.Content),
			Span:  tok.Span,
			Start: startPos,
			End:   endPos,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
