package parser

import (
	"slices"

	"playscript/internal/ast"
	"playscript/internal/diag"
	"playscript/internal/source"
	"playscript/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree   *ast.Tree
	Errors uint
}

// Parser: состояние парсера на один файл. Работает поверх готового
// среза токенов, поэтому может смотреть вперёд на любое число токенов.
type Parser struct {
	tree     *ast.Tree
	toks     []token.Token
	pos      uint32
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseTokens: входная точка для разбора одного файла. toks должен
// заканчиваться EOF (см. lexer.Tokenize). strings может быть nil.
func ParseTokens(file source.FileID, toks []token.Token, strings *source.Interner, opts Options) Result {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var end uint32
		if len(toks) > 0 {
			end = toks[len(toks)-1].Span.End
		}
		toks = append(toks, token.Token{Kind: token.EOF, Span: source.Span{File: file, Start: end, End: end}})
	}
	p := Parser{
		tree: ast.NewTree(file, toks, strings),
		toks: toks,
		opts: opts,
	}
	p.parseProg()
	return Result{Tree: p.tree, Errors: p.opts.CurrentErrors}
}

// parseProg: prog : blockStatement* EOF
func (p *Parser) parseProg() {
	root := p.open(ast.KindProg, ast.NoNodeID)
	p.tree.Root = root
	for !p.at(token.EOF) {
		p.parseBlockStatement(root)
	}
	p.close(root)
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд; за концом, EOF.
func (p *Parser) peekN(n int) token.Token {
	return p.tokAt(int(p.pos) + n)
}

func (p *Parser) tokAt(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) open(kind ast.Kind, parent ast.NodeID) ast.NodeID {
	return p.tree.Open(kind, parent, p.pos)
}

func (p *Parser) close(id ast.NodeID) ast.NodeID {
	p.tree.Close(id, p.pos)
	return id
}

func (p *Parser) setName(id ast.NodeID, name string) {
	if n := p.tree.Node(id); n != nil {
		n.Name = p.tree.Strings.Intern(name)
	}
}

func (p *Parser) setTok(id ast.NodeID, k token.Kind) {
	if n := p.tree.Node(id); n != nil {
		n.Tok = k
	}
}

func (p *Parser) setFlag(id ast.NodeID, f ast.Flags) {
	if n := p.tree.Node(id); n != nil {
		n.Flags |= f
	}
}
