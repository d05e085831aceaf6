package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pips"
	"github.com/rustyeddy/tradebook/pnl"
	"github.com/rustyeddy/tradebook/trade"
)

// ListTrades handles GET /api/v1/trades
func (s *Server) ListTrades(c *gin.Context) {
	entries, err := s.store.ListTrades(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		s.internal(c, "list trades", err)
		return
	}

	views := make([]TradeView, 0, len(entries))
	for _, e := range entries {
		views = append(views, s.view(e))
	}
	c.JSON(http.StatusOK, gin.H{"trades": views})
}

// GetTrade handles GET /api/v1/trades/:id
func (s *Server) GetTrade(c *gin.Context) {
	e, err := s.store.GetTrade(c.Request.Context(), c.GetString(userKey), c.Param("id"))
	if errors.Is(err, journal.ErrNotFound) {
		abort(c, http.StatusNotFound, "TRADE_NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		s.internal(c, "get trade", err)
		return
	}
	c.JSON(http.StatusOK, s.view(e))
}

// Stats handles GET /api/v1/stats. Optional query parameters:
// initial_capital (defaults to the configured account), from and to
// (dates bounding the resolved trade time, to exclusive).
func (s *Server) Stats(c *gin.Context) {
	capital := s.cfg.Account.InitialCapital
	if raw := c.Query("initial_capital"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !numeric.Finite(v) || v <= 0 {
			abort(c, http.StatusBadRequest, "INVALID_CAPITAL", "initial_capital must be a positive number")
			return
		}
		capital = v
	}

	ctx := c.Request.Context()
	user := c.GetString(userKey)

	var (
		entries []journal.Entry
		err     error
	)
	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		start, end, perr := bounds(from, to)
		if perr != nil {
			abort(c, http.StatusBadRequest, "INVALID_RANGE", perr.Error())
			return
		}
		entries, err = s.store.ListTradesBetween(ctx, user, start, end)
	} else {
		entries, err = s.store.ListTrades(ctx, user)
	}
	if err != nil {
		s.internal(c, "load trades", err)
		return
	}

	res := s.sim.Run(journal.Records(entries, s.cfg.Risk.DefaultIsPercentage), capital)
	c.JSON(http.StatusOK, res)
}

// CalcPips handles POST /api/v1/calc/pips
func (s *Server) CalcPips(c *gin.Context) {
	var req PipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	pos, _ := trade.ParsePosition(req.Position)
	out, _ := trade.ParseOutcome(req.Outcome)
	entry := numeric.Value(req.EntryPrice)

	var resp PipsResponse
	if v, ok := pips.Calculate(entry, numeric.Value(req.TakeProfitPrice), numeric.Value(req.StopLossPrice), pos, out); ok {
		resp.Pips = &v
		resp.Formatted = pips.Format(v)
	}
	if v, ok := pips.StopLossDistance(entry, numeric.Value(req.StopLossPrice), pos); ok {
		resp.StopLossDistance = &v
	}
	if v, ok := pips.TakeProfitDistance(entry, numeric.Value(req.TakeProfitPrice), pos); ok {
		resp.TakeProfitDistance = &v
	}
	if v, ok := pips.RewardRisk(entry, numeric.Value(req.TakeProfitPrice), numeric.Value(req.StopLossPrice), pos); ok {
		resp.RewardRisk = &v
	}
	c.JSON(http.StatusOK, resp)
}

// CalcPnl handles POST /api/v1/calc/pnl
func (s *Server) CalcPnl(c *gin.Context) {
	var req PnlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	out, _ := trade.ParseOutcome(req.Outcome)
	isPct := pnl.InferRiskIsPercentage(req.Risk, s.cfg.Risk.DefaultIsPercentage)

	resp := PnlResponse{RiskIsPercentage: isPct}
	v, ok := pnl.Calculate(pnl.Input{
		Pips:           numeric.Value(req.Pips),
		LotSize:        numeric.Value(req.LotSize),
		Risk:           numeric.Value(journal.ParseNumber(req.Risk)),
		Outcome:        out,
		RiskIsAbsolute: !isPct,
	})
	if ok {
		resp.Pnl = &v
		resp.Formatted = pnl.Format(v)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) view(e journal.Entry) TradeView {
	return TradeView{
		Entry:   e,
		Summary: pnl.EvaluateTrade(e.Record(s.cfg.Risk.DefaultIsPercentage), s.cfg.Risk.DefaultIsPercentage),
	}
}

func (s *Server) internal(c *gin.Context, what string, err error) {
	s.log.Error(what, zap.Error(err))
	abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", what+" failed")
}

// bounds parses the from/to query dates. A missing from is the epoch and a
// missing to is far in the future.
func bounds(from, to string) (time.Time, time.Time, error) {
	start := time.Unix(0, 0).UTC()
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if from != "" {
		t, ok := trade.ParseTime(from)
		if !ok {
			return start, end, errors.New("from: unrecognised date")
		}
		start = t
	}
	if to != "" {
		t, ok := trade.ParseTime(to)
		if !ok {
			return start, end, errors.New("to: unrecognised date")
		}
		end = t
	}
	return start, end, nil
}
