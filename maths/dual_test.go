package maths

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"
)

// TestConstruct 测试构造与提升：单参数、双参数以及已是对偶数的情况。
func TestConstruct(t *testing.T) {
	// 单参数：对偶部为零
	c := Const(2)
	assert.Equal(t, 2, c.Real())
	assert.Zero(t, c.Dual())

	// 双参数
	d := New(2, 3)
	assert.Equal(t, 2, d.Real())
	assert.Equal(t, 3, d.Dual())

	// 已是对偶数：原样返回
	m, err := Make[int](d)
	require.NoError(t, err)
	assert.Equal(t, d, m)

	m, err = Make[int](&d)
	require.NoError(t, err)
	assert.Equal(t, d, m)

	// 普通数：按可选对偶部构造
	m, err = Make[int](2)
	require.NoError(t, err)
	assert.Equal(t, Const(2), m)

	m, err = Make(2, 3)
	require.NoError(t, err)
	assert.Equal(t, New(2, 3), m)
}

// TestMakeErrors 测试 Make 的错误分支。
func TestMakeErrors(t *testing.T) {
	d := New(2.0, 3.0)

	_, err := Make(d, 5.0)
	assert.True(t, errors.Is(err, ErrDualOverride))

	_, err = Make[float64]("2")
	assert.True(t, errors.Is(err, ErrNotPromotable))

	// 数值域不同也不提升
	_, err = Make[float64](2)
	assert.True(t, errors.Is(err, ErrNotPromotable))

	var nilDual *Dual[float64]
	_, err = Make[float64](nilDual)
	assert.True(t, errors.Is(err, ErrNotPromotable))

	_, err = Make(2.0, 1.0, 2.0)
	assert.Error(t, err)

	assert.Panics(t, func() { MustMake[float64](d, 1) })
	assert.Equal(t, d, MustMake[float64](d))
}

// TestString 测试字符串与调试形式。
func TestString(t *testing.T) {
	tests := []struct {
		value   fmt.Stringer
		str     string
		inspect string
	}{
		{New(2, 3), "2+3ε", "(2+3ε)"},
		{New(2, -3), "2-3ε", "(2-3ε)"},
		{New(-2, 0), "-2+0ε", "(-2+0ε)"},
		{New(0.5, -0.25), "0.5-0.25ε", "(0.5-0.25ε)"},
		{New[float32](1.5, 2), "1.5+2ε", "(1.5+2ε)"},
		{New[uint8](7, 1), "7+1ε", "(7+1ε)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.str, tt.value.String())
		assert.Equal(t, tt.inspect, fmt.Sprintf("%#v", tt.value))
	}
	assert.Equal(t, "(2+3ε)", New(2, 3).Inspect())
	assert.Equal(t, "2+3ε", fmt.Sprint(New(2, 3)))
}

// TestEqual 测试结构相等及不提升的比较语义。
func TestEqual(t *testing.T) {
	a := New(2, 3)
	assert.True(t, a.Equal(New(2, 3)))
	assert.True(t, a.Equal(&a))
	assert.False(t, a.Equal(New(5, 3)))
	assert.False(t, a.Equal(New(2, 5)))

	// 普通数即使对偶部为零也不相等
	assert.False(t, a.Equal(5))
	assert.False(t, Const(5).Equal(5))
	assert.False(t, a.Equal(New(2.0, 3.0)))
	assert.False(t, a.Equal((*Dual[int])(nil)))

	assert.True(t, a == New(2, 3))
}

// TestArithmetic 测试四则运算、取负与幂运算。
func TestArithmetic(t *testing.T) {
	a, b := New(2, 3), New(5, 7)

	sum := a.Add(b)
	assert.Equal(t, 2+5, sum.Real())
	assert.Equal(t, 3+7, sum.Dual())

	diff := a.Sub(b)
	assert.Equal(t, 2-5, diff.Real())
	assert.Equal(t, 3-7, diff.Dual())

	// 乘积法则
	assert.Equal(t, New(10, 2*7+3*5), a.Mul(b))
	assert.Equal(t, New(10, 31), a.Mul(b))

	// 商法则
	q := New(2.0, 3.0).Div(New(5.0, 7.0))
	assert.InDelta(t, 2.0/5.0, q.Real(), 1e-10)
	assert.InDelta(t, (3.0*5.0-2.0*7.0)/(5.0*5.0), q.Dual(), 1e-10)

	assert.Equal(t, New(-2, -3), a.Neg())
	assert.Equal(t, New(-2.5, 0.0), Const(2.5).Neg())

	// 幂法则 240 = 5×3×2⁴
	assert.Equal(t, New(32, 240), a.Pow(5))
	assert.Equal(t, New(1, 0), a.Pow(0))
	assert.Equal(t, a, a.Pow(1))

	p := New(4.0, 1.0).Pow(0.5)
	assert.InDelta(t, 2.0, p.Real(), 1e-12)
	assert.InDelta(t, 0.25, p.Dual(), 1e-12)

	p = New(2.0, 1.0).Pow(-1)
	assert.InDelta(t, 0.5, p.Real(), 1e-12)
	assert.InDelta(t, -0.25, p.Dual(), 1e-12)

	// p = 0：浮点域在 a = 0 处按幂法则得到 NaN，整数域导数为零
	z := New(0.0, 3.0).Pow(0)
	assert.Equal(t, 1.0, z.Real())
	assert.True(t, math.IsNaN(z.Dual()))
	assert.Equal(t, New(1.0, 0.0), New(2.0, 3.0).Pow(0))
	assert.Equal(t, New(1, 0), New(0, 3).Pow(0))

	// 原值不变
	assert.Equal(t, New(2, 3), a)
	assert.Equal(t, New(5, 7), b)
}

// TestDivideByZero 测试除零沿用数值域行为。
func TestDivideByZero(t *testing.T) {
	q := New(1.0, 1.0).Div(New(0.0, 1.0))
	assert.True(t, math.IsInf(q.Real(), 1))
	assert.True(t, math.IsInf(q.Dual(), -1))

	assert.Panics(t, func() { New(1, 1).Div(Const(0)) })
}

// TestCoercion 测试左右操作数的自动提升。
func TestCoercion(t *testing.T) {
	// 左操作数
	{
		a, b := 2.0, New(3.0, 5.0)
		assert.Equal(t, Const(a).Add(b), RealAdd(a, b))
		assert.Equal(t, Const(a).Sub(b), RealSub(a, b))
		assert.Equal(t, Const(a).Mul(b), RealMul(a, b))
		assert.Equal(t, Const(a).Div(b), RealDiv(a, b))
	}
	// 右操作数
	{
		a, b := New(2.0, 3.0), 5.0
		assert.Equal(t, a.Add(Const(b)), a.AddReal(b))
		assert.Equal(t, a.Sub(Const(b)), a.SubReal(b))
		assert.Equal(t, a.Mul(Const(b)), a.MulReal(b))
		assert.Equal(t, a.Div(Const(b)), a.DivReal(b))
	}
}

// TestAlgebraProperties 属性测试：逐项加减、乘积法则与提升对称性。
func TestAlgebraProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := rapid.Float64Range(-1e6, 1e6)
		a := New(gen.Draw(t, "ar"), gen.Draw(t, "ad"))
		b := New(gen.Draw(t, "br"), gen.Draw(t, "bd"))
		s := gen.Draw(t, "s")

		if sum := a.Add(b); sum.Real() != a.Real()+b.Real() || sum.Dual() != a.Dual()+b.Dual() {
			t.Fatalf("addition not componentwise: %v + %v = %v", a, b, sum)
		}
		if diff := a.Sub(b); diff.Real() != a.Real()-b.Real() || diff.Dual() != a.Dual()-b.Dual() {
			t.Fatalf("subtraction not componentwise: %v - %v = %v", a, b, diff)
		}
		p := a.Mul(b)
		if p.Real() != a.Real()*b.Real() || !scalar.EqualWithinAbsOrRel(p.Dual(), a.Real()*b.Dual()+a.Dual()*b.Real(), 1e-6, 1e-12) {
			t.Fatalf("product rule violated: %v * %v = %v", a, b, p)
		}
		if !RealAdd(s, b).Equal(Const(s).Add(b)) || !a.MulReal(s).Equal(a.Mul(Const(s))) {
			t.Fatalf("coercion asymmetric for %v and %v", s, b)
		}
		if !a.Neg().Equal(New(-a.Real(), -a.Dual())) {
			t.Fatalf("negation of %v gave %v", a, a.Neg())
		}
		if m, err := Make[float64](a); err != nil || m != a {
			t.Fatalf("promotion not idempotent for %v", a)
		}
	})
}

// TestIntegerPowProperty 属性测试：整数域幂运算保持精确。
func TestIntegerPowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.Int64Range(-20, 20).Draw(t, "real")
		d := rapid.Int64Range(-20, 20).Draw(t, "dual")
		p := rapid.Int64Range(1, 8).Draw(t, "power")

		want := Const[int64](1)
		x := New(r, d)
		for i := int64(0); i < p; i++ {
			want = want.Mul(x)
		}
		if got := x.Pow(p); got != want {
			t.Fatalf("%v ** %d = %v, want %v", x, p, got, want)
		}
	})
}

// BenchmarkDualMul 测试乘法性能。
func BenchmarkDualMul(b *testing.B) {
	x, y := New(1.5, 0.5), New(2.5, -1.0)
	for i := 0; i < b.N; i++ {
		x = x.Mul(y).DivReal(2.5)
	}
	_ = x
}
