package lexer

import (
	"playscript/internal/diag"
	"playscript/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
