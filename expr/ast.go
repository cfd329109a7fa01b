// Package expr 提供单变量表达式的解析与对偶求值。
// 表达式以 x 为自变量，支持 + - * / ^、括号、常量 e/pi
// 以及 sin cos exp log sqrt 函数调用，求值结果同时携带函数值与导数。
package expr

import (
	"math"

	"dualnum/dmath"
	"dualnum/maths"
)

// Variable 自变量名称
const Variable = "x"

// Node 语法树节点
type Node interface {
	// Eval 在对偶数 x 处求值
	Eval(x maths.Dual[float64]) maths.Dual[float64]
	// String 返回完全加括号的表达式
	String() string
	// HasVar 子树是否含自变量
	HasVar() bool
}

// NumberNode 数字或命名常量
type NumberNode struct {
	Value float64
	Text  string // 原始文本，如 "2.5"、"pi"
}

func (n *NumberNode) Eval(maths.Dual[float64]) maths.Dual[float64] { return maths.Const(n.Value) }
func (n *NumberNode) String() string                               { return n.Text }
func (n *NumberNode) HasVar() bool                                 { return false }

// VarNode 自变量
type VarNode struct{}

func (VarNode) Eval(x maths.Dual[float64]) maths.Dual[float64] { return x }
func (VarNode) String() string                                 { return Variable }
func (VarNode) HasVar() bool                                   { return true }

// UnaryNode 一元取负
type UnaryNode struct {
	Operand Node
}

func (n *UnaryNode) Eval(x maths.Dual[float64]) maths.Dual[float64] { return n.Operand.Eval(x).Neg() }
func (n *UnaryNode) String() string                                 { return "(-" + n.Operand.String() + ")" }
func (n *UnaryNode) HasVar() bool                                   { return n.Operand.HasVar() }

// BinaryNode 二元运算 + - * /
type BinaryNode struct {
	Op          string
	Left, Right Node
}

func (n *BinaryNode) Eval(x maths.Dual[float64]) maths.Dual[float64] {
	l, r := n.Left.Eval(x), n.Right.Eval(x)
	switch n.Op {
	case tokenPlus:
		return l.Add(r)
	case tokenMinus:
		return l.Sub(r)
	case tokenStar:
		return l.Mul(r)
	case tokenSlash:
		return l.Div(r)
	}
	panic("expr: unknown operator " + n.Op)
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func (n *BinaryNode) HasVar() bool { return n.Left.HasVar() || n.Right.HasVar() }

// PowNode 常数幂，指数在解析时已求值
type PowNode struct {
	Base     Node
	Exponent float64
	Text     string // 指数原始表达式
}

func (n *PowNode) Eval(x maths.Dual[float64]) maths.Dual[float64] {
	return n.Base.Eval(x).Pow(n.Exponent)
}
func (n *PowNode) String() string { return "(" + n.Base.String() + " ^ " + n.Text + ")" }
func (n *PowNode) HasVar() bool   { return n.Base.HasVar() }

// CallNode 函数调用
type CallNode struct {
	Name string
	Arg  Node
	fn   func(maths.Dual[float64]) maths.Dual[float64]
}

func (n *CallNode) Eval(x maths.Dual[float64]) maths.Dual[float64] { return n.fn(n.Arg.Eval(x)) }
func (n *CallNode) String() string                                 { return n.Name + "(" + n.Arg.String() + ")" }
func (n *CallNode) HasVar() bool                                   { return n.Arg.HasVar() }

// functions 支持的函数表
var functions = map[string]func(maths.Dual[float64]) maths.Dual[float64]{
	"sin":  dmath.Sin[maths.Dual[float64]],
	"cos":  dmath.Cos[maths.Dual[float64]],
	"exp":  dmath.Exp[maths.Dual[float64]],
	"log":  dmath.Log[maths.Dual[float64]],
	"ln":   dmath.Log[maths.Dual[float64]],
	"sqrt": dmath.Sqrt[maths.Dual[float64]],
}

// constants 命名常量
var constants = map[string]float64{
	"e":  math.E,
	"pi": math.Pi,
}

// Functions 返回支持的函数名
func Functions() []string {
	return []string{"sin", "cos", "exp", "log", "ln", "sqrt"}
}
