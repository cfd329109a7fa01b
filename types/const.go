package types

// 默认参数常量定义
var (
	Tolerance     = 1e-10   // 收敛容差
	MaxIterations = 50      // 牛顿迭代最大次数
	MaxStep       = 1e3     // 单步最大步进（阻尼）
	DefaultSteps  = 200     // 采样默认步数
	MaxSteps      = 1 << 20 // 采样最大步数
	DefaultFrom   = -5.0    // 采样默认起点
	DefaultTo     = 5.0     // 采样默认终点
)
