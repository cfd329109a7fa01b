// Package sweep 在区间上对可微函数采样，记录函数值与导数并渲染曲线。
package sweep

import (
	"errors"
	"fmt"
	"io"
	"math"

	"dualnum/diff"
	"dualnum/types"
)

// ErrRange 采样区间或步数无效
var ErrRange = errors.New("sweep: invalid range")

// Sample 单个采样点
type Sample struct {
	X     float64 `json:"x"`     // 自变量
	Value float64 `json:"value"` // f(x)
	Slope float64 `json:"slope"` // f'(x)
}

// Config 采样参数
type Config struct {
	Title string  `yaml:"title" json:"title"` // 曲线标题
	From  float64 `yaml:"from" json:"from"`   // 起点
	To    float64 `yaml:"to" json:"to"`       // 终点
	Steps int     `yaml:"steps" json:"steps"` // 步数（采样点数为 Steps+1）
}

// DefaultConfig 返回默认采样参数
func DefaultConfig() Config {
	return Config{
		From:  types.DefaultFrom,
		To:    types.DefaultTo,
		Steps: types.DefaultSteps,
	}
}

// Validate 检查采样参数
func (cfg Config) Validate() error {
	switch {
	case math.IsNaN(cfg.From) || math.IsInf(cfg.From, 0) ||
		math.IsNaN(cfg.To) || math.IsInf(cfg.To, 0):
		return fmt.Errorf("%w: bounds must be finite (from=%g, to=%g)", ErrRange, cfg.From, cfg.To)
	case cfg.From >= cfg.To:
		return fmt.Errorf("%w: from (%g) must be less than to (%g)", ErrRange, cfg.From, cfg.To)
	case cfg.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrRange, cfg.Steps)
	case cfg.Steps > types.MaxSteps:
		return fmt.Errorf("%w: steps must not exceed %d, got %d", ErrRange, types.MaxSteps, cfg.Steps)
	}
	return nil
}

// Debug 采样记录接口
type Debug interface {
	Init(cfg Config)
	Update(s Sample)
	Render(w io.Writer) error
	Error(err error)
}

// Run 在 [From, To] 上等距采样 Steps+1 个点，逐点交给记录器
func Run(f diff.Func[float64], cfg Config, debug Debug) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	debug.Init(cfg)
	h := (cfg.To - cfg.From) / float64(cfg.Steps)
	for i := 0; i <= cfg.Steps; i++ {
		x := cfg.From + float64(i)*h
		if i == cfg.Steps {
			x = cfg.To
		}
		value, slope := diff.Derivative(f, x)
		// 定义域外的点照常记录，只上报
		if math.IsNaN(value) || math.IsNaN(slope) {
			debug.Error(fmt.Errorf("sweep: f is undefined at x=%g", x))
		}
		debug.Update(Sample{X: x, Value: value, Slope: slope})
	}
	return nil
}
