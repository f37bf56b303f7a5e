package parser

import (
	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/token"
)

// parseBlockStatement:
//
//	localVariableDeclaration ';' | statement | functionDeclaration | classDeclaration
//
// Всегда продвигается хотя бы на один токен, если не стоит на '}' или EOF.
func (p *Parser) parseBlockStatement(parent ast.NodeID) {
	start := p.pos
	switch p.classifyDecl() {
	case declClass:
		p.parseClassDecl(parent)
	case declFunction:
		p.parseFunctionDecl(parent)
	case declVariable:
		decl := p.parseLocalVarDecl(parent)
		p.expectSemicolon(decl)
	default:
		p.parseStatement(parent)
	}
	if p.pos == start && !p.at(token.EOF) {
		bad := p.open(ast.KindError, parent)
		p.advance()
		p.close(bad)
	}
}

// classDeclaration: modifier* CLASS IDENTIFIER (EXTENDS typeType)? classBody
func (p *Parser) parseClassDecl(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindClassDecl, parent)
	defer p.close(id)
	p.parseModifiers(id)
	p.advance() // class

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name")
	if !ok {
		p.recoverStatement(id)
		return id
	}
	p.setName(id, name.Text)

	if p.at(token.KwExtends) {
		p.advance()
		if _, ok := p.parseTypeType(id); !ok {
			p.resyncUntil(id, token.LBrace, token.Semicolon, token.RBrace)
		}
	}
	p.parseClassBody(id)
	return id
}

// classBody: '{' classBodyDeclaration* '}'
func (p *Parser) parseClassBody(parent ast.NodeID) {
	body := p.open(ast.KindClassBody, parent)
	defer p.close(body)
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body"); !ok {
		p.recoverStatement(body)
		return
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		p.parseClassBodyDecl(body)
		if p.pos == start {
			bad := p.open(ast.KindError, body)
			p.advance()
			p.close(bad)
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body")
}

// classBodyDeclaration: ';' | modifier* (functionDeclaration | fieldDeclaration | classDeclaration)
func (p *Parser) parseClassBodyDecl(body ast.NodeID) {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	switch p.classifyDecl() {
	case declClass:
		p.parseClassDecl(body)
	case declFunction:
		p.parseFunctionDecl(body)
	case declVariable:
		field := p.open(ast.KindFieldDecl, body)
		p.parseModifiers(field)
		p.parseVarDeclarators(field)
		p.expectSemicolon(field)
		p.close(field)
	default:
		p.err(diag.SynUnexpectedToken, "expected field, method or class declaration")
		p.recoverStatement(body)
	}
}

// functionDeclaration:
//
//	modifier* typeTypeOrVoid? IDENTIFIER formalParameters ('[' ']')* functionBody
//	modifier* FUNCTION IDENTIFIER formalParameters (':' typeTypeOrVoid)? functionBody
func (p *Parser) parseFunctionDecl(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindFunctionDecl, parent)
	defer p.close(id)
	p.parseModifiers(id)

	keyword := p.at(token.KwFunction)
	if keyword {
		p.setFlag(id, ast.FlagFunctionKeyword)
		p.advance()
	} else if !(p.at(token.Ident) && p.peekN(1).Kind == token.LParen) {
		if _, ok := p.parseTypeTypeOrVoid(id); !ok {
			p.recoverStatement(id)
			return id
		}
	}

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		p.recoverStatement(id)
		return id
	}
	p.setName(id, name.Text)

	if !p.parseFormalParameters(id) {
		p.resyncUntil(id, token.LBrace, token.Semicolon, token.RBrace)
	}
	for p.at(token.LBracket) && p.peekN(1).Kind == token.RBracket {
		p.advance()
		p.advance()
	}
	if keyword && p.at(token.Colon) {
		p.advance()
		p.setFlag(id, ast.FlagTrailingReturn)
		if _, ok := p.parseTypeTypeOrVoid(id); !ok {
			p.resyncUntil(id, token.LBrace, token.Semicolon, token.RBrace)
		}
	}
	p.parseFunctionBody(id)
	return id
}

// functionBody: block | ';'
func (p *Parser) parseFunctionBody(parent ast.NodeID) {
	body := p.open(ast.KindFunctionBody, parent)
	defer p.close(body)
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		p.parseBlock(body)
	default:
		p.err(diag.SynUnexpectedToken, "expected function body")
		p.recoverStatement(body)
	}
}

// formalParameters: '(' (formalParameter (',' formalParameter)*)? ')'
func (p *Parser) parseFormalParameters(parent ast.NodeID) bool {
	params := p.open(ast.KindFormalParameters, parent)
	defer p.close(params)
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters"); !ok {
		return false
	}
	if !p.at(token.RParen) {
		for {
			if !p.parseFormalParameter(params) {
				p.resyncUntil(params, token.Comma, token.RParen, token.LBrace)
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters")
	return ok
}

// formalParameter: modifier* typeType variableDeclaratorId
func (p *Parser) parseFormalParameter(parent ast.NodeID) bool {
	param := p.open(ast.KindFormalParameter, parent)
	defer p.close(param)
	p.parseModifiers(param)
	if _, ok := p.parseTypeType(param); !ok {
		return false
	}
	return p.parseVarDeclaratorID(param)
}

// localVariableDeclaration: modifier* variableDeclarators
func (p *Parser) parseLocalVarDecl(parent ast.NodeID) ast.NodeID {
	decl := p.open(ast.KindLocalVarDecl, parent)
	p.parseModifiers(decl)
	p.parseVarDeclarators(decl)
	return p.close(decl)
}

// variableDeclarators: typeType variableDeclarator (',' variableDeclarator)*
func (p *Parser) parseVarDeclarators(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindVarDeclarators, parent)
	defer p.close(id)
	if _, ok := p.parseTypeType(id); !ok {
		return id
	}
	for {
		p.parseVarDeclarator(id)
		if !p.at(token.Comma) {
			return id
		}
		p.advance()
	}
}

// variableDeclarator: variableDeclaratorId ('=' variableInitializer)?
func (p *Parser) parseVarDeclarator(parent ast.NodeID) {
	id := p.open(ast.KindVarDeclarator, parent)
	defer p.close(id)
	if !p.parseVarDeclaratorID(id) {
		return
	}
	if p.at(token.Assign) {
		p.advance()
		p.parseVariableInitializer(id)
	}
}

// variableDeclaratorId: IDENTIFIER ('[' ']')*
func (p *Parser) parseVarDeclaratorID(parent ast.NodeID) bool {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	if !ok {
		return false
	}
	id := p.tree.Open(ast.KindVarDeclaratorID, parent, p.pos-1)
	p.setName(id, name.Text)
	for p.at(token.LBracket) && p.peekN(1).Kind == token.RBracket {
		p.advance()
		p.advance()
		p.setFlag(id, ast.FlagArray)
	}
	p.close(id)
	return true
}

// variableInitializer: arrayInitializer | expression
func (p *Parser) parseVariableInitializer(parent ast.NodeID) {
	if p.at(token.LBrace) {
		p.parseArrayInit(parent)
		return
	}
	p.parseExpr(parent)
}

// arrayInitializer: '{' (variableInitializer (',' variableInitializer)* ','?)? '}'
func (p *Parser) parseArrayInit(parent ast.NodeID) ast.NodeID {
	id := p.open(ast.KindArrayInit, parent)
	defer p.close(id)
	p.advance() // {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		p.parseVariableInitializer(id)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.pos == start {
			break
		}
		if !p.at(token.RBrace) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close array initializer")
	return id
}
