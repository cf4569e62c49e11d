package analytics

// Config carries the fixed market assumptions used by the engine. They are
// threaded in explicitly rather than hidden as package constants so tests can
// run with alternate assumptions.
type Config struct {
	TradingDays    int     // trading days per year used for annualization
	RiskFreeRate   float64 // annual risk-free rate for the Sharpe ratio
	VaRZScore      float64 // one-tailed z-score for the VaR confidence level
	MinHistoryDays int     // minimum common trading days required for analysis
	InitialValue   float64 // normalized starting value of the simulated path
}

// DefaultConfig returns the standard assumptions: 252 trading days per year,
// 4% risk-free rate and the one-tailed 95% z-score.
func DefaultConfig() Config {
	return Config{
		TradingDays:    252,
		RiskFreeRate:   0.04,
		VaRZScore:      1.645,
		MinHistoryDays: 20,
		InitialValue:   1.0,
	}
}

// withDefaults fills any zero field so a partially populated config cannot
// produce divisions by zero downstream.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TradingDays <= 0 {
		c.TradingDays = def.TradingDays
	}
	if c.VaRZScore <= 0 {
		c.VaRZScore = def.VaRZScore
	}
	if c.MinHistoryDays <= 0 {
		c.MinHistoryDays = def.MinHistoryDays
	}
	if c.InitialValue <= 0 {
		c.InitialValue = def.InitialValue
	}
	return c
}

// Engine runs the analysis pipeline. It holds no mutable state; every call
// works purely on its inputs, so one engine can serve concurrent requests.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the assumptions the engine was built with
func (e *Engine) Config() Config {
	return e.cfg
}
