package lexer

import (
	"inkwell/internal/diag"
	"inkwell/internal/source"
)

type Options struct {
	// Reporter receives notes about unterminated literals. Может быть nil,
	// тогда замечания игнорируем; токены от этого не меняются.
	Reporter diag.Reporter
}

func (lx *Lexer) note(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevInfo, sp, msg)
	}
}
