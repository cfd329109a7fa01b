// Package dmath 扩展 math 包的超越函数，使其同时接受普通浮点数与对偶数。
//
// 同一调用形式按实参的运行时类型分派：普通数走 math 包原有计算，
// 对偶数走链式法则计算。已有调用点只需把实参换成对偶数即可得到导数。
//
//	y := dmath.Sin(0.5)                    // 与 math.Sin(0.5) 相同
//	d := dmath.Sin(maths.New(0.5, 1.0))    // 同时得到 sin(0.5) 与 cos(0.5)
package dmath

import (
	"fmt"
	"math"

	"dualnum/maths"
)

// Value 可参与超越函数计算的实参类型
type Value interface {
	float32 | float64 | maths.Dual[float32] | maths.Dual[float64]
}

// Sin 正弦
func Sin[V Value](x V) V {
	return apply(x, math.Sin, maths.Sin[float32], maths.Sin[float64])
}

// Cos 余弦
func Cos[V Value](x V) V {
	return apply(x, math.Cos, maths.Cos[float32], maths.Cos[float64])
}

// Exp 自然指数
func Exp[V Value](x V) V {
	return apply(x, math.Exp, maths.Exp[float32], maths.Exp[float64])
}

// Log 自然对数
func Log[V Value](x V) V {
	return apply(x, math.Log, maths.Log[float32], maths.Log[float64])
}

// Sqrt 平方根
func Sqrt[V Value](x V) V {
	return apply(x, math.Sqrt, maths.Sqrt[float32], maths.Sqrt[float64])
}

// apply 按实参的运行时类型选择计算路径
func apply[V Value](
	x V,
	plain func(float64) float64,
	dual32 func(maths.Dual[float32]) maths.Dual[float32],
	dual64 func(maths.Dual[float64]) maths.Dual[float64],
) V {
	var out any
	switch v := any(x).(type) {
	case float64:
		out = plain(v)
	case float32:
		out = float32(plain(float64(v)))
	case maths.Dual[float64]:
		out = dual64(v)
	case maths.Dual[float32]:
		out = dual32(v)
	default:
		panic(fmt.Sprintf("dmath: unsupported argument type %T", x))
	}
	return out.(V)
}
