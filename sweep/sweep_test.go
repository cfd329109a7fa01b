package sweep

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dualnum/maths"
	"dualnum/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x maths.Dual[float64]) maths.Dual[float64] { return x.Mul(x) }

// TestRun 测试等距采样与记录。
func TestRun(t *testing.T) {
	rec := new(Record)
	err := Run(square, Config{From: -1, To: 1, Steps: 4}, rec)
	require.NoError(t, err)
	require.Len(t, rec.Samples, 5)

	wantX := []float64{-1, -0.5, 0, 0.5, 1}
	for i, s := range rec.Samples {
		assert.InDelta(t, wantX[i], s.X, 1e-12)
		assert.InDelta(t, s.X*s.X, s.Value, 1e-12)
		assert.InDelta(t, 2*s.X, s.Slope, 1e-12)
	}
	// 终点精确落在 To 上
	assert.Equal(t, 1.0, rec.Samples[4].X)

	x, value, slope := rec.Columns()
	assert.Equal(t, wantX[0], x[0])
	assert.Len(t, value, 5)
	assert.Len(t, slope, 5)

	m := rec.Dense()
	r, c := m.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 3, c)
	assert.InDelta(t, 0.25, m.At(1, 1), 1e-12)
	assert.InDelta(t, -1.0, m.At(1, 2), 1e-12)

	assert.Nil(t, new(Record).Dense())
}

// TestValidate 测试无效采样参数。
func TestValidate(t *testing.T) {
	bad := []Config{
		{From: 1, To: 1, Steps: 10},
		{From: 2, To: 1, Steps: 10},
		{From: 0, To: 1, Steps: 0},
		{From: math.Inf(-1), To: 1, Steps: 10},
		{From: 0, To: math.NaN(), Steps: 10},
		{From: 0, To: 1, Steps: types.MaxSteps + 1},
		{From: 0, To: 1, Steps: math.MaxInt},
	}
	for _, cfg := range bad {
		err := Run(square, cfg, new(Record))
		assert.True(t, errors.Is(err, ErrRange), "%+v", cfg)
	}
	assert.NoError(t, DefaultConfig().Validate())
}

// TestUndefinedPoints 测试定义域外的采样点被记录并上报。
func TestUndefinedPoints(t *testing.T) {
	rec := new(Record)
	err := Run(maths.Sqrt[float64], Config{From: -1, To: 1, Steps: 2}, rec)
	require.NoError(t, err)
	require.Len(t, rec.Samples, 3)
	assert.True(t, math.IsNaN(rec.Samples[0].Value))
	assert.True(t, math.IsInf(rec.Samples[1].Slope, 1))
	assert.Len(t, rec.Errors, 1)

	// JSON 中非有限值输出为 null
	var buf bytes.Buffer
	require.NoError(t, rec.Render(&buf))
	var out struct {
		Samples []struct {
			X     *float64 `json:"x"`
			Value *float64 `json:"value"`
			Slope *float64 `json:"slope"`
		} `json:"samples"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Samples, 3)
	assert.Nil(t, out.Samples[0].Value)
	assert.Nil(t, out.Samples[1].Slope)
	require.NotNil(t, out.Samples[2].Slope)
	assert.InDelta(t, 0.5, *out.Samples[2].Slope, 1e-12)
	assert.Len(t, out.Errors, 1)
}

// TestCharts 测试 HTML 曲线页面。
func TestCharts(t *testing.T) {
	c := new(Charts)
	require.NoError(t, Run(maths.Sin[float64], Config{Title: "sin", From: 0, To: 3, Steps: 30}, c))

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "sin")

	rr := httptest.NewRecorder()
	c.Handler(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "f(x)"))
}

// TestPlot 测试图像输出及非有限值切段。
func TestPlot(t *testing.T) {
	rec := new(Record)
	require.NoError(t, Run(maths.Log[float64], Config{From: -1, To: 2, Steps: 30}, rec))

	segs := segments(rec.Samples, func(s Sample) float64 { return s.Value })
	require.Len(t, segs, 1)
	assert.Len(t, segs[0], 20)

	path := filepath.Join(t.TempDir(), "log.png")
	require.NoError(t, Plot(rec, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = NewPlot(new(Record))
	assert.Error(t, err)
}
