package parser

import (
	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/fix"
	"playscript/internal/source"
	"playscript/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: лучший span для диагностики: на EOF указываем сразу
// за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, fixes ...diag.Fix) bool {
	if sev == diag.SevError {
		enough := p.opts.Enough()
		p.opts.CurrentErrors++
		if enough {
			return false // достигли максимального количества ошибок
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	d := diag.New(sev, code, sp, msg)
	d.Fixes = fixes
	p.opts.Reporter.Report(d)
	return true
}

// resyncUntil прокручивает токены до одного из stop (не съедая его) или EOF.
// Пропущенные токены сохраняются в узле KindError под parent.
func (p *Parser) resyncUntil(parent ast.NodeID, stop ...token.Kind) {
	if p.atOr(stop...) || p.at(token.EOF) {
		return
	}
	skipped := p.open(ast.KindError, parent)
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
	p.close(skipped)
}

// recoverStatement пропускает до ';' (и съедает его) или до '}'.
func (p *Parser) recoverStatement(parent ast.NodeID) {
	p.resyncUntil(parent, token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// expectSemicolon: частый случай; при ошибке синхронизируемся.
func (p *Parser) expectSemicolon(parent ast.NodeID) bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	var fixes []diag.Fix
	if p.lastSpan.End > 0 {
		// вставляем ';' сразу за последним съеденным токеном
		at := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End}
		fixes = append(fixes, fix.InsertText("insert ';'", at, ";"))
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.getDiagnosticSpan(), "expected ';'", fixes...)
	p.recoverStatement(parent)
	return false
}

func (p *Parser) parseModifiers(parent ast.NodeID) {
	for token.IsModifier(p.peek().Kind) {
		m := p.open(ast.KindModifier, parent)
		p.setTok(m, p.advance().Kind)
		p.close(m)
	}
}
