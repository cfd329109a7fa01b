package sweep

import (
	"encoding/json"
	"io"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Record 记录采样历史
type Record struct {
	Config  Config   `json:"config"`  // 采样参数
	Samples []Sample `json:"samples"` // 采样点
	Errors  []string `json:"errors"`  // 采样过程中的异常
}

// Init 初始化
func (list *Record) Init(cfg Config) {
	list.Config = cfg
	list.Samples = make([]Sample, 0, cfg.Steps+1)
	list.Errors = nil
}

// Update 记录数据
func (list *Record) Update(s Sample) { list.Samples = append(list.Samples, s) }

// Render 格式和输出内容
// NaN/Inf 无法编码为 JSON，输出为 null。
func (list *Record) Render(w io.Writer) error {
	type sample struct {
		X     *float64 `json:"x"`
		Value *float64 `json:"value"`
		Slope *float64 `json:"slope"`
	}
	out := struct {
		Config  Config   `json:"config"`
		Samples []sample `json:"samples"`
		Errors  []string `json:"errors,omitempty"`
	}{Config: list.Config, Errors: list.Errors}
	out.Samples = make([]sample, len(list.Samples))
	for i, s := range list.Samples {
		out.Samples[i] = sample{finite(s.X), finite(s.Value), finite(s.Slope)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (list *Record) Error(err error) {
	list.Errors = append(list.Errors, err.Error())
	log.Println(err)
}

// Columns 拆分为 x、f(x)、f'(x) 三列
func (list *Record) Columns() (x, value, slope []float64) {
	n := len(list.Samples)
	x, value, slope = make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range list.Samples {
		x[i], value[i], slope[i] = s.X, s.Value, s.Slope
	}
	return x, value, slope
}

// Dense 以 n×3 矩阵返回采样表，列依次为 x、f(x)、f'(x)
func (list *Record) Dense() *mat.Dense {
	if len(list.Samples) == 0 {
		return nil
	}
	m := mat.NewDense(len(list.Samples), 3, nil)
	for i, s := range list.Samples {
		m.SetRow(i, []float64{s.X, s.Value, s.Slope})
	}
	return m
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
