package parser

import (
	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/token"
)

// block: '{' blockStatement* '}'
func (p *Parser) parseBlock(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindBlock, parent)
	defer p.close(id)
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return id
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.parseBlockStatement(id)
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	return id
}

func (p *Parser) openStmt(parent ast.NodeID, kind ast.StmtKind) ast.NodeID {
	id := p.open(ast.KindStatement, parent)
	p.tree.Node(id).Stmt = kind
	return id
}

// parseStatement разбирает statement; на неподходящем токене репортит
// ошибку и ничего не съедает (прогресс обеспечивает вызывающий).
func (p *Parser) parseStatement(parent ast.NodeID) ast.NodeID {
	switch p.peek().Kind {
	case token.LBrace:
		id := p.openStmt(parent, ast.StmtBlock)
		p.parseBlock(id)
		return p.close(id)

	case token.KwIf:
		id := p.openStmt(parent, ast.StmtIf)
		p.advance()
		p.parseParExpr(id)
		p.parseStatement(id)
		if p.at(token.KwElse) {
			p.advance()
			p.parseStatement(id)
		}
		return p.close(id)

	case token.KwFor:
		id := p.openStmt(parent, ast.StmtFor)
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "expected '(' after 'for'"); ok {
			p.parseForControl(id)
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for header"); !ok {
				p.resyncUntil(id, token.RParen, token.LBrace, token.Semicolon)
				if p.at(token.RParen) {
					p.advance()
				}
			}
		}
		p.parseStatement(id)
		return p.close(id)

	case token.KwWhile:
		id := p.openStmt(parent, ast.StmtWhile)
		p.advance()
		p.parseParExpr(id)
		p.parseStatement(id)
		return p.close(id)

	case token.KwDo:
		id := p.openStmt(parent, ast.StmtDo)
		p.advance()
		p.parseStatement(id)
		if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); ok {
			p.parseParExpr(id)
		}
		p.expectSemicolon(id)
		return p.close(id)

	case token.KwReturn:
		id := p.openStmt(parent, ast.StmtReturn)
		p.advance()
		if !p.at(token.Semicolon) {
			p.parseExpr(id)
		}
		p.expectSemicolon(id)
		return p.close(id)

	case token.KwBreak, token.KwContinue:
		kind := ast.StmtBreak
		if p.at(token.KwContinue) {
			kind = ast.StmtContinue
		}
		id := p.openStmt(parent, kind)
		p.advance()
		if p.at(token.Ident) {
			p.setName(id, p.advance().Text)
		}
		p.expectSemicolon(id)
		return p.close(id)

	case token.Semicolon:
		id := p.openStmt(parent, ast.StmtEmpty)
		p.advance()
		return p.close(id)

	case token.RBrace, token.EOF:
		p.err(diag.SynUnexpectedToken, "expected statement")
		return ast.NoNodeID

	case token.Ident:
		if p.peekN(1).Kind == token.Colon {
			id := p.openStmt(parent, ast.StmtLabeled)
			p.setName(id, p.advance().Text)
			p.advance() // :
			p.parseStatement(id)
			return p.close(id)
		}
	}

	id := p.openStmt(parent, ast.StmtExpr)
	if !p.parseExpr(id).IsValid() {
		p.recoverStatement(id)
		return p.close(id)
	}
	p.expectSemicolon(id)
	return p.close(id)
}

// parExpression: '(' expression ')'
func (p *Parser) parseParExpr(parent ast.NodeID) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return
	}
	p.parseExpr(parent)
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		p.resyncUntil(parent, token.RParen, token.LBrace, token.Semicolon)
		if p.at(token.RParen) {
			p.advance()
		}
	}
}

// forControl: enhancedForControl | forInit? ';' expression? ';' expressionList?
func (p *Parser) parseForControl(parent ast.NodeID) {
	if p.atEnhancedFor() {
		id := p.open(ast.KindEnhancedForControl, parent)
		p.parseModifiers(id)
		p.parseTypeType(id)
		p.parseVarDeclaratorID(id)
		p.advance() // :
		p.parseExpr(id)
		p.close(id)
		return
	}

	id := p.open(ast.KindForControl, parent)
	defer p.close(id)
	if !p.at(token.Semicolon) {
		init := p.open(ast.KindForInit, id)
		if p.classifyDecl() == declVariable {
			p.parseLocalVarDecl(init)
		} else {
			p.parseExprList(init)
		}
		p.close(init)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' in for header"); !ok {
		return
	}
	if !p.at(token.Semicolon) {
		p.parseExpr(id)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader, "expected ';' in for header"); !ok {
		return
	}
	if !p.at(token.RParen) {
		p.parseExprList(id)
	}
}

// expressionList: expression (',' expression)*
func (p *Parser) parseExprList(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindExprList, parent)
	defer p.close(id)
	for {
		if !p.parseExpr(id).IsValid() {
			return id
		}
		if !p.at(token.Comma) {
			return id
		}
		p.advance()
	}
}
