package maths

import "math"

// Add 加法：实部、对偶部分别相加
func (d Dual[T]) Add(other Dual[T]) Dual[T] {
	return Dual[T]{
		real: d.real + other.real,
		dual: d.dual + other.dual,
	}
}

// Sub 减法：实部、对偶部分别相减
func (d Dual[T]) Sub(other Dual[T]) Dual[T] {
	return Dual[T]{
		real: d.real - other.real,
		dual: d.dual - other.dual,
	}
}

// Mul 乘法（乘积法则）：
// (a + a'ε)(b + b'ε) = ab + (ab' + a'b)ε
func (d Dual[T]) Mul(other Dual[T]) Dual[T] {
	return Dual[T]{
		real: d.real * other.real,
		dual: d.real*other.dual + d.dual*other.real,
	}
}

// Div 除法（商法则）：
// (a + a'ε)/(b + b'ε) = a/b + ((a'b - ab')/b²)ε
// 除数实部为零时沿用数值域自身的除零行为。
func (d Dual[T]) Div(other Dual[T]) Dual[T] {
	return Dual[T]{
		real: d.real / other.real,
		dual: (d.dual*other.real - d.real*other.dual) / (other.real * other.real),
	}
}

// AddReal 右操作数为普通数的加法
func (d Dual[T]) AddReal(v T) Dual[T] { return d.Add(Const(v)) }

// SubReal 右操作数为普通数的减法
func (d Dual[T]) SubReal(v T) Dual[T] { return d.Sub(Const(v)) }

// MulReal 右操作数为普通数的乘法
func (d Dual[T]) MulReal(v T) Dual[T] { return d.Mul(Const(v)) }

// DivReal 右操作数为普通数的除法
func (d Dual[T]) DivReal(v T) Dual[T] { return d.Div(Const(v)) }

// RealAdd 左操作数为普通数的加法 v + d
func RealAdd[T Number](v T, d Dual[T]) Dual[T] { return Const(v).Add(d) }

// RealSub 左操作数为普通数的减法 v - d
func RealSub[T Number](v T, d Dual[T]) Dual[T] { return Const(v).Sub(d) }

// RealMul 左操作数为普通数的乘法 v * d
func RealMul[T Number](v T, d Dual[T]) Dual[T] { return Const(v).Mul(d) }

// RealDiv 左操作数为普通数的除法 v / d
func RealDiv[T Number](v T, d Dual[T]) Dual[T] { return Const(v).Div(d) }

// Neg 取负，等价于乘以 -1
func (d Dual[T]) Neg() Dual[T] {
	var minusOne T
	minusOne--
	return d.MulReal(minusOne)
}

// Pow 常数幂（幂法则）：
// (a + a'ε)^p = a^p + (p·a'·a^(p-1))ε
func (d Dual[T]) Pow(p T) Dual[T] {
	if isIntegral(p) {
		n := uint64(float64(p))
		var lower T
		switch {
		case n > 0:
			lower = powInt(d.real, n-1)
		case isFloating[T]():
			// 浮点域按 a^(-1) 计算，a = 0 时导数为 NaN
			lower = 1 / d.real
		}
		return Dual[T]{
			real: powInt(d.real, n),
			dual: p * d.dual * lower,
		}
	}
	return Dual[T]{
		real: T(math.Pow(float64(d.real), float64(p))),
		dual: p * d.dual * T(math.Pow(float64(d.real), float64(p)-1)),
	}
}

// powInt 快速幂，保持整数域的精确性
func powInt[T Number](base T, n uint64) T {
	result := T(1)
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	return result
}
