package parser

import (
	"strings"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/token"
)

// parseTypeTypeOrVoid: VOID | typeType
func (p *Parser) parseTypeTypeOrVoid(parent ast.NodeID) (ast.NodeID, bool) {
	id := p.open(ast.KindTypeTypeOrVoid, parent)
	if p.at(token.KwVoid) {
		p.setTok(id, p.advance().Kind)
		return p.close(id), true
	}
	_, ok := p.parseTypeType(id)
	return p.close(id), ok
}

// parseTypeType: (classOrInterfaceType | functionType | primitiveType) ('[' ']')*
func (p *Parser) parseTypeType(parent ast.NodeID) (ast.NodeID, bool) {
	id := p.open(ast.KindTypeType, parent)
	ok := true
	switch k := p.peek().Kind; {
	case token.IsPrimitive(k):
		prim := p.open(ast.KindPrimitiveType, id)
		p.setTok(prim, p.advance().Kind)
		p.close(prim)
	case k == token.Ident:
		p.parseClassOrInterfaceType(id)
	case k == token.KwFunction:
		ok = p.parseFunctionType(id)
	default:
		p.err(diag.SynExpectType, "expected type")
		return p.close(id), false
	}
	for p.at(token.LBracket) && p.peekN(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		p.setFlag(id, ast.FlagArray)
	}
	return p.close(id), ok
}

// parseClassOrInterfaceType: IDENTIFIER ('.' IDENTIFIER)*
func (p *Parser) parseClassOrInterfaceType(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindClassOrInterfaceType, parent)
	var name strings.Builder
	name.WriteString(p.advance().Text)
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		p.advance()
		name.WriteByte('.')
		name.WriteString(p.advance().Text)
	}
	p.setName(id, name.String())
	return p.close(id)
}

// parseFunctionType принимает обе формы:
//
//	function T (A, B)
//	function (A, B): T
func (p *Parser) parseFunctionType(parent ast.NodeID) bool {
	id := p.open(ast.KindFunctionType, parent)
	p.advance() // function
	defer p.close(id)

	if p.at(token.LParen) {
		p.setFlag(id, ast.FlagTrailingReturn)
		if !p.parseTypeListParens(id) {
			return false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and a return type after function type parameters"); !ok {
			return false
		}
		_, ok := p.parseTypeTypeOrVoid(id)
		return ok
	}

	if _, ok := p.parseTypeTypeOrVoid(id); !ok {
		return false
	}
	return p.parseTypeListParens(id)
}

// '(' typeList? ')'
func (p *Parser) parseTypeListParens(parent ast.NodeID) bool {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' in function type"); !ok {
		return false
	}
	if !p.at(token.RParen) {
		list := p.open(ast.KindTypeList, parent)
		for {
			if _, ok := p.parseTypeType(list); !ok {
				p.close(list)
				return false
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.close(list)
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close function type parameters")
	return ok
}
