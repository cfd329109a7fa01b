package expr

import (
	"strconv"
	"strings"

	"dualnum/diff"
	"dualnum/maths"
)

// Tree 解析树
type Tree struct {
	Source string // 原始表达式
	Root   Node   // 根节点
}

// Parse 解析表达式
func Parse(src string) (*Tree, error) {
	tokens, err := tokenize(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != kindEOF {
		return nil, errorAt(tok.Col, "多余的内容 %q", tok.Text)
	}
	return &Tree{Source: src, Root: root}, nil
}

// MustParse 同 Parse，出错时 panic
func MustParse(src string) *Tree {
	tree, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return tree
}

// Eval 在对偶数 x 处求值
func (tree *Tree) Eval(x maths.Dual[float64]) maths.Dual[float64] {
	return tree.Root.Eval(x)
}

// Value 在普通数 x 处求值
func (tree *Tree) Value(x float64) float64 {
	return tree.Root.Eval(maths.Const(x)).Real()
}

// Func 转换为可微函数
func (tree *Tree) Func() diff.Func[float64] {
	return tree.Root.Eval
}

// String 返回完全加括号的表达式
func (tree *Tree) String() string {
	return tree.Root.String()
}

// parser 递归下降解析器
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('-' | '+') unary | power
//	power   := primary ('^' unary)?
//	primary := number | ident | ident '(' expr ')' | '(' expr ')'
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.Kind != kindEOF {
		p.pos++
	}
	return tok
}

// accept 当前为指定符号时消耗它
func (p *parser) accept(symbols ...string) (string, bool) {
	tok := p.peek()
	if tok.Kind != kindSymbol {
		return "", false
	}
	for _, s := range symbols {
		if tok.Text == s {
			p.pos++
			return s, true
		}
	}
	return "", false
}

func (p *parser) expect(symbol string) error {
	if _, ok := p.accept(symbol); ok {
		return nil
	}
	tok := p.peek()
	if tok.Kind == kindEOF {
		return errorAt(tok.Col, "缺少 %q", symbol)
	}
	return errorAt(tok.Col, "期望 %q，得到 %q", symbol, tok.Text)
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(tokenPlus, tokenMinus)
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(tokenStar, tokenSlash)
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if op, ok := p.accept(tokenMinus, tokenPlus); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == tokenPlus {
			return operand, nil
		}
		return &UnaryNode{Operand: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(tokenCaret); !ok {
		return base, nil
	}
	col := p.peek().Col
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	// 不支持对偶值指数
	if exp.HasVar() {
		return nil, errorAt(col, "指数必须是常数，不能包含 %s", Variable)
	}
	return &PowNode{
		Base:     base,
		Exponent: exp.Eval(maths.Const(0.0)).Real(),
		Text:     exp.String(),
	}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.Kind {
	case kindNumber:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, errorAt(tok.Col, "无效的数字 %q", tok.Text)
		}
		return &NumberNode{Value: v, Text: tok.Text}, nil
	case kindIdent:
		name := strings.ToLower(tok.Text)
		if fn, ok := functions[name]; ok {
			if err := p.expect(tokenLParen); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokenRParen); err != nil {
				return nil, err
			}
			return &CallNode{Name: name, Arg: arg, fn: fn}, nil
		}
		if name == Variable {
			return VarNode{}, nil
		}
		if v, ok := constants[name]; ok {
			return &NumberNode{Value: v, Text: name}, nil
		}
		return nil, errorAt(tok.Col, "未知的标识符 %q", tok.Text)
	case kindSymbol:
		if tok.Text == tokenLParen {
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokenRParen); err != nil {
				return nil, err
			}
			return inner, nil
		}
		return nil, errorAt(tok.Col, "意外的符号 %q", tok.Text)
	}
	return nil, errorAt(tok.Col, "表达式不完整")
}
