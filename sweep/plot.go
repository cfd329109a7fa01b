package sweep

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// 图像默认尺寸
var (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 5 * vg.Inch
)

// Plot 将采样记录绘制为图像，格式由扩展名决定（png、svg、pdf 等）
func Plot(list *Record, path string) error {
	p, err := NewPlot(list)
	if err != nil {
		return err
	}
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return fmt.Errorf("保存图像 %s 失败: %w", path, err)
	}
	return nil
}

// NewPlot 构建 f(x) 与 f'(x) 两条曲线
func NewPlot(list *Record) (*plot.Plot, error) {
	if len(list.Samples) == 0 {
		return nil, errors.New("sweep: no samples to plot")
	}
	p := plot.New()
	p.Title.Text = list.Config.Title
	if p.Title.Text == "" {
		p.Title.Text = "f(x)"
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	series := []struct {
		name   string
		pick   func(Sample) float64
		color  color.Color
		dashes []vg.Length
	}{
		{"f(x)", func(s Sample) float64 { return s.Value }, color.RGBA{R: 0x19, G: 0x87, B: 0xc7, A: 0xff}, nil},
		{"f'(x)", func(s Sample) float64 { return s.Slope }, color.RGBA{R: 0xc7, G: 0x19, B: 0x79, A: 0xff}, []vg.Length{vg.Points(4), vg.Points(2)}},
	}
	for _, ser := range series {
		for i, seg := range segments(list.Samples, ser.pick) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("构建曲线 %s 失败: %w", ser.name, err)
			}
			line.LineStyle = draw.LineStyle{Color: ser.color, Width: vg.Points(1.5), Dashes: ser.dashes}
			p.Add(line)
			// 同一曲线的多段只添加一次图例
			if i == 0 {
				p.Legend.Add(ser.name, line)
			}
		}
	}
	p.Legend.Top = true
	return p, nil
}

// segments 按非有限值切分为连续的有限段
func segments(samples []Sample, pick func(Sample) float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, s := range samples {
		y := pick(s)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: s.X, Y: y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
