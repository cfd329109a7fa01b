// Package diff 基于对偶数的前向模式自动微分工具。
package diff

import "dualnum/maths"

// Func 可在对偶数上求值的单变量函数
type Func[T maths.Float] func(maths.Dual[T]) maths.Dual[T]

// Tangent 以 x + 1ε 为种子求值，返回完整的对偶结果
func Tangent[T maths.Float](f Func[T], x T) maths.Dual[T] {
	return f(maths.New(x, 1))
}

// Derivative 同时返回 f(x) 与 f'(x)
func Derivative[T maths.Float](f Func[T], x T) (value, slope T) {
	d := Tangent(f, x)
	return d.Real(), d.Dual()
}

// Directional 以任意种子 v 求值，返回 f(x) 与 v·f'(x)
func Directional[T maths.Float](f Func[T], x, v T) (value, slope T) {
	d := f(maths.New(x, v))
	return d.Real(), d.Dual()
}
