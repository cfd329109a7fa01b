package maths

import "math"

// Epsilon 浮点精度阈值
const Epsilon = 1e-16

// Number 是一个约束，允许任何整数或浮点类型
// 对偶数的实部与对偶部共享同一个数值域
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float 超越函数只在浮点域上定义
type Float interface {
	~float32 | ~float64
}

// abs 是一个泛型函数，返回任何支持的 Number 类型的绝对值。
// 无符号类型本身非负，直接返回。
func abs[T Number](v T) T {
	switch x := any(v).(type) {
	case float32:
		return T(math.Abs(float64(x)))
	case float64:
		return T(math.Abs(x))
	}
	if v < 0 {
		return -v
	}
	return v
}

// isIntegral 判断 p 是否为非负整数（用于精确幂运算）
func isIntegral[T Number](p T) bool {
	f := float64(p)
	return f >= 0 && f == math.Trunc(f) && !math.IsInf(f, 0)
}

// isFloating 判断 T 是否为浮点类型
func isFloating[T Number]() bool {
	var half T = 1
	half /= 2
	return half != 0
}
