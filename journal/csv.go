package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// CSVHeader is the column layout used for import and export. Each row is one
// leg; trade columns repeat on every leg of the same trade.
var CSVHeader = []string{
	"id", "instrument", "date", "open_time", "close_time", "created_at",
	"outcome", "lot_size", "notes",
	"leg", "entry_price", "stop_loss_price", "take_profit_price",
	"position", "leg_outcome", "risk", "pips",
}

// WriteCSV writes entries to w, one row per leg. Trades without legs get a
// single row with empty leg columns.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, e := range entries {
		head := []string{
			e.ID, e.Instrument, e.Date, e.OpenTime, e.CloseTime, e.CreatedAt,
			e.Outcome, e.LotSize, e.Notes,
		}
		if len(e.Legs) == 0 {
			if err := cw.Write(append(head, "", "", "", "", "", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for i, l := range e.Legs {
			row := append(append([]string{}, head...),
				strconv.Itoa(i), l.EntryPrice, l.StopLossPrice, l.TakeProfitPrice,
				l.Position, l.Outcome, l.Risk, l.Pips,
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads entries written by WriteCSV. Columns are matched by header
// name, so extra or reordered columns are fine. Consecutive rows with the same
// id are merged into one trade. Rows with an empty id start a new trade each.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	if _, ok := col["id"]; !ok {
		return nil, errors.New("csv: missing id column")
	}

	var out []Entry
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(rec) {
				return rec[i]
			}
			return ""
		}

		id := get("id")
		if n := len(out); n == 0 || id == "" || out[n-1].ID != id {
			out = append(out, Entry{
				ID:         id,
				Instrument: get("instrument"),
				Date:       get("date"),
				OpenTime:   get("open_time"),
				CloseTime:  get("close_time"),
				CreatedAt:  get("created_at"),
				Outcome:    get("outcome"),
				LotSize:    get("lot_size"),
				Notes:      get("notes"),
			})
		}

		leg := Leg{
			EntryPrice:      get("entry_price"),
			StopLossPrice:   get("stop_loss_price"),
			TakeProfitPrice: get("take_profit_price"),
			Position:        get("position"),
			Outcome:         get("leg_outcome"),
			Risk:            get("risk"),
			Pips:            get("pips"),
		}
		if leg != (Leg{}) {
			last := &out[len(out)-1]
			last.Legs = append(last.Legs, leg)
		}
	}
	return out, nil
}
