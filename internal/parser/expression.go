package parser

import (
	"strings"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/token"
)

func (p *Parser) parseExpr(parent ast.NodeID) ast.NodeID {
	return p.parseBinary(parent, precAssignment)
}

// parseBinary: Pratt: левый операнд строится под parent, затем
// Precede подвешивает его под узел оператора.
func (p *Parser) parseBinary(parent ast.NodeID, minPrec int) ast.NodeID {
	lhs := p.parseUnary(parent)
	if !lhs.IsValid() {
		return ast.NoNodeID
	}
	for {
		op := p.peek().Kind
		prec, rightAssoc := binaryPrec(op)
		if prec < minPrec {
			return lhs
		}
		next := prec + 1
		if rightAssoc {
			next = prec
		}

		var node ast.NodeID
		switch {
		case op == token.Question:
			node = p.tree.Precede(lhs, ast.KindTernary)
			p.advance()
			p.parseExpr(node)
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); ok {
				p.parseBinary(node, next)
			}
		case token.IsAssignOp(op):
			node = p.tree.Precede(lhs, ast.KindAssign)
			p.setTok(node, p.advance().Kind)
			p.parseBinary(node, next)
		default:
			node = p.tree.Precede(lhs, ast.KindBinary)
			p.setTok(node, p.advance().Kind)
			p.parseBinary(node, next)
		}
		lhs = p.close(node)
	}
}

// prefix: ('+'|'-'|'!'|'~'|'++'|'--') expression
func (p *Parser) parseUnary(parent ast.NodeID) ast.NodeID {
	switch k := p.peek().Kind; k {
	case token.Plus, token.Minus, token.Bang, token.Tilde, token.Inc, token.Dec:
		id := p.open(ast.KindUnary, parent)
		p.setTok(id, p.advance().Kind)
		p.parseUnary(id)
		return p.close(id)
	}
	return p.parsePostfix(parent)
}

// postfix: primary ( '.' IDENT | '(' args ')' | '[' expr ']' | '++' | '--' )*
func (p *Parser) parsePostfix(parent ast.NodeID) ast.NodeID {
	expr := p.parsePrimary(parent)
	if !expr.IsValid() {
		return ast.NoNodeID
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			node := p.tree.Precede(expr, ast.KindMember)
			p.advance()
			if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'"); ok {
				p.setName(node, name.Text)
			}
			expr = p.close(node)
		case token.LParen:
			node := p.tree.Precede(expr, ast.KindCall)
			p.parseArguments(node)
			expr = p.close(node)
		case token.LBracket:
			node := p.tree.Precede(expr, ast.KindIndex)
			p.advance()
			p.parseExpr(node)
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
			expr = p.close(node)
		case token.Inc, token.Dec:
			node := p.tree.Precede(expr, ast.KindPostfix)
			p.setTok(node, p.advance().Kind)
			expr = p.close(node)
		default:
			return expr
		}
	}
}

// '(' expressionList? ')', аргументы становятся прямыми детьми вызова.
func (p *Parser) parseArguments(call ast.NodeID) {
	p.advance() // (
	if !p.at(token.RParen) {
		for {
			if !p.parseExpr(call).IsValid() {
				break
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments"); !ok {
		p.resyncUntil(call, token.RParen, token.Semicolon, token.RBrace)
		if p.at(token.RParen) {
			p.advance()
		}
	}
}

func (p *Parser) parsePrimary(parent ast.NodeID) ast.NodeID {
	tok := p.peek()
	switch {
	case tok.Kind == token.LParen:
		id := p.open(ast.KindParen, parent)
		p.advance()
		p.parseExpr(id)
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return p.close(id)
	case tok.IsLiteral():
		id := p.open(ast.KindLiteral, parent)
		p.setTok(id, p.advance().Kind)
		return p.close(id)
	case tok.Kind == token.KwThis:
		id := p.open(ast.KindThis, parent)
		p.advance()
		return p.close(id)
	case tok.Kind == token.KwSuper:
		id := p.open(ast.KindSuper, parent)
		p.advance()
		return p.close(id)
	case tok.Kind == token.Ident:
		id := p.open(ast.KindIdent, parent)
		p.setName(id, p.advance().Text)
		return p.close(id)
	case tok.Kind == token.KwNew:
		return p.parseNew(parent)
	}
	p.err(diag.SynExpectExpression, "expected expression")
	return ast.NoNodeID
}

// creator: NEW (classOrInterfaceType | primitiveType) ( arguments | ('[' expression? ']')+ arrayInitializer? )
func (p *Parser) parseNew(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindNew, parent)
	defer p.close(id)
	p.advance() // new

	// createdName: IDENTIFIER ('.' IDENTIFIER)* | primitiveType
	switch k := p.peek().Kind; {
	case k == token.Ident:
		name := p.open(ast.KindIdent, id)
		var b strings.Builder
		b.WriteString(p.advance().Text)
		for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
			p.advance()
			b.WriteByte('.')
			b.WriteString(p.advance().Text)
		}
		p.setName(name, b.String())
		p.close(name)
	case token.IsPrimitive(k):
		prim := p.open(ast.KindPrimitiveType, id)
		p.setTok(prim, p.advance().Kind)
		p.close(prim)
	default:
		p.err(diag.SynExpectType, "expected type after 'new'")
		return id
	}

	switch {
	case p.at(token.LParen):
		p.parseArguments(id)
	case p.at(token.LBracket):
		for p.at(token.LBracket) {
			p.advance()
			if !p.at(token.RBracket) {
				p.parseExpr(id)
			}
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
		}
		p.setFlag(id, ast.FlagArray)
		if p.at(token.LBrace) {
			p.parseArrayInit(id)
		}
	default:
		p.err(diag.SynUnexpectedToken, "expected '(' or '[' after type in 'new'")
	}
	return id
}
