package maths

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 对偶单位符号 ε（ε² = 0）
const epsilonSymbol = "ε"

var (
	// ErrDualOverride 对已是对偶数的值再次指定对偶部
	ErrDualOverride = errors.New("maths: dual part given for a value that is already dual")
	// ErrNotPromotable 无法提升为对偶数的操作数
	ErrNotPromotable = errors.New("maths: operand cannot be promoted to a dual number")
)

// Dual 对偶数 real + dual·ε。
// 值创建后不可变，所有运算都返回新的实例。
type Dual[T Number] struct {
	real T // 实部（函数值）
	dual T // 对偶部（导数系数）
}

// New 由实部与对偶部创建对偶数
func New[T Number](real, dual T) Dual[T] {
	return Dual[T]{real: real, dual: dual}
}

// Const 将普通数提升为对偶数，对偶部为零
func Const[T Number](real T) Dual[T] {
	return Dual[T]{real: real}
}

// Make 将任意操作数规范化为对偶数。
// 已是对偶数时原样返回；同时给出对偶部则返回 ErrDualOverride。
// 普通数按可选的对偶部（默认零）构造。
func Make[T Number](v any, dual ...T) (Dual[T], error) {
	if len(dual) > 1 {
		return Dual[T]{}, fmt.Errorf("maths: Make takes at most one dual part, got %d", len(dual))
	}
	switch x := v.(type) {
	case Dual[T]:
		if len(dual) > 0 {
			return x, fmt.Errorf("%w: %s", ErrDualOverride, x)
		}
		return x, nil
	case *Dual[T]:
		if x == nil {
			return Dual[T]{}, fmt.Errorf("%w: nil %T", ErrNotPromotable, v)
		}
		if len(dual) > 0 {
			return *x, fmt.Errorf("%w: %s", ErrDualOverride, x)
		}
		return *x, nil
	case T:
		if len(dual) > 0 {
			return New(x, dual[0]), nil
		}
		return Const(x), nil
	}
	return Dual[T]{}, fmt.Errorf("%w: %T", ErrNotPromotable, v)
}

// MustMake 同 Make，出错时 panic
func MustMake[T Number](v any, dual ...T) Dual[T] {
	d, err := Make(v, dual...)
	if err != nil {
		panic(err)
	}
	return d
}

// Real 返回实部
func (d Dual[T]) Real() T { return d.real }

// Dual 返回对偶部
func (d Dual[T]) Dual() T { return d.dual }

// Equal 结构相等：实部与对偶部逐项相等。
// 非对偶数一律不相等，不做隐式提升。
func (d Dual[T]) Equal(other any) bool {
	switch o := other.(type) {
	case Dual[T]:
		return d.real == o.real && d.dual == o.dual
	case *Dual[T]:
		return o != nil && d.real == o.real && d.dual == o.dual
	}
	return false
}

// String 规范形式 "2+3ε" / "2-3ε"
func (d Dual[T]) String() string {
	var sb strings.Builder
	sb.WriteString(formatNumber(d.real))
	if d.dual < 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('+')
	}
	sb.WriteString(formatNumber(abs(d.dual)))
	sb.WriteString(epsilonSymbol)
	return sb.String()
}

// Inspect 调试形式 "(2+3ε)"
func (d Dual[T]) Inspect() string {
	return "(" + d.String() + ")"
}

// GoString 使 %#v 输出调试形式
func (d Dual[T]) GoString() string { return d.Inspect() }

// formatNumber 将数值格式化为最短的十进制表示
func formatNumber[T Number](v T) string {
	switch val := any(v).(type) {
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
