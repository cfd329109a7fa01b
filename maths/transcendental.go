package maths

import "math"

// 超越函数的对偶扩展，按链式法则 f(a + a'ε) = f(a) + f'(a)·a'ε 计算。
// 定义域外的输入（log 负数、sqrt 负数等）沿用 math 包的 NaN/Inf 行为。

// Sin 正弦：sin(a) + a'·cos(a)ε
func Sin[T Float](x Dual[T]) Dual[T] {
	r := float64(x.real)
	return Dual[T]{
		real: T(math.Sin(r)),
		dual: x.dual * T(math.Cos(r)),
	}
}

// Cos 余弦：cos(a) - a'·sin(a)ε
func Cos[T Float](x Dual[T]) Dual[T] {
	r := float64(x.real)
	return Dual[T]{
		real: T(math.Cos(r)),
		dual: -x.dual * T(math.Sin(r)),
	}
}

// Exp 自然指数：e^a + a'·e^a ε
func Exp[T Float](x Dual[T]) Dual[T] {
	e := T(math.Exp(float64(x.real)))
	return Dual[T]{
		real: e,
		dual: x.dual * e,
	}
}

// Log 自然对数：ln(a) + (a'/a)ε
func Log[T Float](x Dual[T]) Dual[T] {
	return Dual[T]{
		real: T(math.Log(float64(x.real))),
		dual: x.dual / x.real,
	}
}

// Sqrt 平方根：√a + (a'/(2√a))ε
// a = 0 时对偶部发散为 ±Inf。
func Sqrt[T Float](x Dual[T]) Dual[T] {
	s := T(math.Sqrt(float64(x.real)))
	return Dual[T]{
		real: s,
		dual: x.dual / (2 * s),
	}
}
