// Package dualnum 基于对偶数的表达式求值、导数采样与牛顿求根。
package dualnum

import (
	"fmt"

	"dualnum/diff"
	"dualnum/expr"
	"dualnum/maths"
	"dualnum/sweep"
)

// Evaluate 解析表达式并在 x 处求出函数值与导数
func Evaluate(src string, x float64) (maths.Dual[float64], error) {
	tree, err := expr.Parse(src)
	if err != nil {
		return maths.Dual[float64]{}, err
	}
	return diff.Tangent(tree.Func(), x), nil
}

// Sweep 对表达式在区间上采样
func Sweep(src string, cfg sweep.Config, debug sweep.Debug) error {
	tree, err := expr.Parse(src)
	if err != nil {
		return err
	}
	if cfg.Title == "" {
		cfg.Title = tree.Source
	}
	if err := sweep.Run(tree.Func(), cfg, debug); err != nil {
		return fmt.Errorf("采样 %q 失败: %w", src, err)
	}
	return nil
}

// Solve 从 x0 出发用牛顿迭代求表达式的根
func Solve(src string, x0 float64, cfg diff.Config) (diff.Result, error) {
	tree, err := expr.Parse(src)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Newton(tree.Func(), x0, cfg)
}
