package parser

import (
	"playscript/internal/token"
)

// Синтаксический просмотр вперёд без построения узлов. Все функции
// принимают индекс токена и возвращают индекс сразу за распознанной
// конструкцией; ok=false: конструкция не распознана.

func (p *Parser) skipModifiersAt(i int) int {
	for token.IsModifier(p.tokAt(i).Kind) {
		i++
	}
	return i
}

// matchParenAt: toks[i] == '(' → индекс после парной ')'.
func (p *Parser) matchParenAt(i int) (int, bool) {
	if p.tokAt(i).Kind != token.LParen {
		return i, false
	}
	depth := 0
	for ; ; i++ {
		switch p.tokAt(i).Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case token.EOF:
			return i, false
		}
	}
}

func (p *Parser) scanTypeOrVoidAt(i int) (int, bool) {
	if p.tokAt(i).Kind == token.KwVoid {
		return i + 1, true
	}
	return p.scanTypeAt(i)
}

// scanTypeAt распознаёт typeType: (classOrInterfaceType | functionType | primitiveType) ('[' ']')*
func (p *Parser) scanTypeAt(i int) (int, bool) {
	switch k := p.tokAt(i).Kind; {
	case token.IsPrimitive(k):
		i++
	case k == token.Ident:
		i++
		for p.tokAt(i).Kind == token.Dot && p.tokAt(i+1).Kind == token.Ident {
			i += 2
		}
	case k == token.KwFunction:
		var ok bool
		if p.tokAt(i+1).Kind == token.LParen {
			if i, ok = p.matchParenAt(i + 1); !ok || p.tokAt(i).Kind != token.Colon {
				return i, false
			}
			if i, ok = p.scanTypeOrVoidAt(i + 1); !ok {
				return i, false
			}
		} else {
			if i, ok = p.scanTypeOrVoidAt(i + 1); !ok {
				return i, false
			}
			if i, ok = p.matchParenAt(i); !ok {
				return i, false
			}
		}
	default:
		return i, false
	}
	for p.tokAt(i).Kind == token.LBracket && p.tokAt(i+1).Kind == token.RBracket {
		i += 2
	}
	return i, true
}

type declKind uint8

const (
	declNone declKind = iota
	declClass
	declFunction
	declVariable
)

// classifyDecl решает, с какого объявления начинается позиция p.pos.
func (p *Parser) classifyDecl() declKind {
	i := p.skipModifiersAt(int(p.pos))
	switch p.tokAt(i).Kind {
	case token.KwClass:
		return declClass
	case token.KwVoid:
		if p.tokAt(i+1).Kind == token.Ident && p.tokAt(i+2).Kind == token.LParen {
			return declFunction
		}
		return declNone
	case token.KwFunction:
		// function f(...) { | : | ; значит объявление; иначе это функциональный тип
		if p.tokAt(i+1).Kind == token.Ident && p.tokAt(i+2).Kind == token.LParen {
			if j, ok := p.matchParenAt(i + 2); ok {
				switch p.tokAt(j).Kind {
				case token.LBrace, token.Colon, token.Semicolon:
					return declFunction
				}
			}
		}
	case token.Ident:
		// Name(...) { это конструктор
		if p.tokAt(i+1).Kind == token.LParen {
			if j, ok := p.matchParenAt(i + 1); ok && p.tokAt(j).Kind == token.LBrace {
				return declFunction
			}
			return declNone
		}
	}
	end, ok := p.scanTypeAt(i)
	if !ok || p.tokAt(end).Kind != token.Ident {
		return declNone
	}
	if p.tokAt(end+1).Kind == token.LParen {
		return declFunction
	}
	return declVariable
}

// atEnhancedFor: modifiers* typeType IDENT ':'
func (p *Parser) atEnhancedFor() bool {
	i := p.skipModifiersAt(int(p.pos))
	end, ok := p.scanTypeAt(i)
	return ok && p.tokAt(end).Kind == token.Ident && p.tokAt(end+1).Kind == token.Colon
}
