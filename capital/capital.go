// Package capital replays a trading history against a compounding balance
// to produce total profit, total loss and a profit factor.
//
// The replay is order sensitive: each trade risks a fraction of the capital
// left by all earlier trades, so trades are sorted by time (stably) and
// applied in a single pass.
//
// Profit is computed as riskAmount * pips. That multiplies money by a raw pip
// count and is not standard pip-value arithmetic; it is the journal's
// established formula and is reproduced as is.
package capital

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/trade"
)

// Skip reasons reported on the ledger and in logs.
const (
	SkipNoRisk = "no finite risk"
	SkipNoPips = "no finite pips"
)

// Step is one applied trade in the replay.
type Step struct {
	TradeID      string        `json:"trade_id"`
	Time         time.Time     `json:"time"`
	Outcome      trade.Outcome `json:"outcome"`
	RiskFraction float64       `json:"risk_fraction"`
	RiskAmount   float64       `json:"risk_amount"`
	Delta        float64       `json:"delta"`
	Capital      float64       `json:"capital"`
}

// Skip records a resolved trade that did not take part in the replay.
type Skip struct {
	TradeID string `json:"trade_id"`
	Reason  string `json:"reason"`
}

// Result is the outcome of a replay.
//
// ProfitFactor is nil when TotalLoss is zero, including when there was
// profit. FinalCapital is not clamped and may be negative.
type Result struct {
	ProfitFactor *float64 `json:"profit_factor"`
	TotalProfit  float64  `json:"total_profit"`
	TotalLoss    float64  `json:"total_loss"`
	FinalCapital float64  `json:"final_capital"`

	InitialCapital float64 `json:"initial_capital"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	NetPL          float64 `json:"net_pl"`
	ReturnPct      float64 `json:"return_pct"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`

	Steps   []Step `json:"steps,omitempty"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// Trades returns the number of trades applied.
func (r Result) Trades() int {
	return len(r.Steps)
}

// WinRate is Wins over applied trades, in percent.
func (r Result) WinRate() float64 {
	if len(r.Steps) == 0 {
		return 0
	}
	return 100 * float64(r.Wins) / float64(len(r.Steps))
}

// Simulator runs replays. The zero value is ready to use and logs nothing.
// A Simulator holds no state between runs and is safe for concurrent use.
type Simulator struct {
	Logger *zap.Logger
}

// NewSimulator returns a Simulator that logs skipped trades to log.
func NewSimulator(log *zap.Logger) *Simulator {
	return &Simulator{Logger: log}
}

// ProfitFactor replays trades with a silent Simulator.
func ProfitFactor(trades []trade.Record, initialCapital float64) Result {
	var s Simulator
	return s.Run(trades, initialCapital)
}

// RiskFraction returns the first finite risk entry as a fraction of capital.
// Entries above 1 are percentage points (2 -> 0.02); entries at or below 1
// are already fractions, so exactly 1 means the whole balance.
func RiskFraction(risk []*float64) (float64, bool) {
	v, ok := numeric.FirstFinite(risk)
	if !ok {
		return 0, false
	}
	if v > 1 {
		v /= 100
	}
	return v, true
}

type timed struct {
	rec trade.Record
	at  time.Time
}

// Run replays trades in chronological order starting from initialCapital.
// When initialCapital is not a finite positive number the zero result is
// returned and trades is not read. Unset trades are ignored.
func (s *Simulator) Run(trades []trade.Record, initialCapital float64) Result {
	if !numeric.Finite(initialCapital) || initialCapital <= 0 {
		return Result{}
	}

	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	resolved := make([]timed, 0, len(trades))
	for _, t := range trades {
		if !t.Outcome.Resolved() {
			continue
		}
		at, _ := t.ResolveTime()
		resolved = append(resolved, timed{rec: t, at: at})
	}
	slices.SortStableFunc(resolved, func(a, b timed) int {
		return cmp.Compare(a.at.UnixMilli(), b.at.UnixMilli())
	})

	res := Result{InitialCapital: initialCapital}
	capital := initialCapital
	peak := capital

	for _, tt := range resolved {
		t := tt.rec

		frac, ok := RiskFraction(t.Risk)
		if !ok {
			log.Debug("skip trade", zap.String("trade_id", t.ID), zap.String("reason", SkipNoRisk))
			res.Skipped = append(res.Skipped, Skip{TradeID: t.ID, Reason: SkipNoRisk})
			continue
		}
		riskAmount := capital * frac

		var delta float64
		switch t.Outcome {
		case trade.Profit:
			p, ok := numeric.FirstFinite(t.Pips)
			if !ok {
				log.Debug("skip trade", zap.String("trade_id", t.ID), zap.String("reason", SkipNoPips))
				res.Skipped = append(res.Skipped, Skip{TradeID: t.ID, Reason: SkipNoPips})
				continue
			}
			profit := riskAmount * p
			if numeric.Finite(profit) && profit > 0 {
				res.TotalProfit += profit
				capital += profit
				delta = profit
			}
			res.Wins++
		case trade.Loss:
			loss := riskAmount
			if numeric.Finite(loss) && loss > 0 {
				res.TotalLoss += loss
				capital -= loss
				delta = -loss
			}
			res.Losses++
		}

		res.Steps = append(res.Steps, Step{
			TradeID:      t.ID,
			Time:         tt.at,
			Outcome:      t.Outcome,
			RiskFraction: frac,
			RiskAmount:   riskAmount,
			Delta:        delta,
			Capital:      capital,
		})

		if capital > peak {
			peak = capital
		}
		if dd := 100 * (peak - capital) / peak; dd > res.MaxDrawdownPct {
			res.MaxDrawdownPct = dd
		}
	}

	if res.TotalLoss > 0 {
		pf := res.TotalProfit / res.TotalLoss
		res.ProfitFactor = &pf
	}
	res.FinalCapital = capital
	res.NetPL = capital - initialCapital
	res.ReturnPct = 100 * res.NetPL / initialCapital

	log.Debug("replay complete",
		zap.Int("applied", len(res.Steps)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Float64("total_profit", res.TotalProfit),
		zap.Float64("total_loss", res.TotalLoss),
		zap.Float64("final_capital", capital),
	)
	return res
}
