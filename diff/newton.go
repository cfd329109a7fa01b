package diff

import (
	"errors"
	"fmt"
	"math"

	"dualnum/types"

	"gonum.org/v1/gonum/floats/scalar"
)

var (
	// ErrNoConvergence 达到最大迭代次数仍未收敛
	ErrNoConvergence = errors.New("diff: newton iteration did not converge")
	// ErrZeroSlope 导数为零或非有限值，无法继续迭代
	ErrZeroSlope = errors.New("diff: derivative is zero or not finite")
)

// Config 牛顿迭代参数
type Config struct {
	Tolerance     float64 `yaml:"tolerance"`      // 收敛容差（|f| 或步长）
	MaxIterations int     `yaml:"max_iterations"` // 最大迭代次数
	MaxStep       float64 `yaml:"max_step"`       // 单步最大步进，<=0 表示不限制
}

// DefaultConfig 返回默认参数
func DefaultConfig() Config {
	return Config{
		Tolerance:     types.Tolerance,
		MaxIterations: types.MaxIterations,
		MaxStep:       types.MaxStep,
	}
}

// Result 牛顿迭代结果
type Result struct {
	Root       float64 // 根
	Value      float64 // f(Root)
	Slope      float64 // f'(Root)
	Iterations int     // 迭代次数
}

// Newton 牛顿-拉弗森求根，每次迭代用一次对偶求值同时得到 f 与 f'。
func Newton(f Func[float64], x0 float64, cfg Config) (Result, error) {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = types.Tolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = types.MaxIterations
	}
	x := x0
	for i := 1; i <= cfg.MaxIterations; i++ {
		value, slope := Derivative(f, x)
		res := Result{Root: x, Value: value, Slope: slope, Iterations: i}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return res, fmt.Errorf("diff: f(%g) = %g", x, value)
		}
		if math.Abs(value) <= cfg.Tolerance {
			return res, nil
		}
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return res, fmt.Errorf("%w: f'(%g) = %g", ErrZeroSlope, x, slope)
		}
		step := limitStep(value/slope, cfg.MaxStep)
		next := x - step
		// 步长已小于容差
		if scalar.EqualWithinAbsOrRel(next, x, cfg.Tolerance, cfg.Tolerance) {
			value, slope = Derivative(f, next)
			return Result{Root: next, Value: value, Slope: slope, Iterations: i}, nil
		}
		x = next
	}
	value, slope := Derivative(f, x)
	return Result{Root: x, Value: value, Slope: slope, Iterations: cfg.MaxIterations},
		fmt.Errorf("%w after %d iterations (x=%g, f=%g)", ErrNoConvergence, cfg.MaxIterations, x, value)
}

// limitStep 限制单步步长以获得数值稳定性
func limitStep(step, maxStep float64) float64 {
	if maxStep <= 0 {
		return step
	}
	if step > maxStep {
		return maxStep
	}
	if step < -maxStep {
		return -maxStep
	}
	return step
}
