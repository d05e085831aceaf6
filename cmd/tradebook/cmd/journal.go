package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradebook/internal/id"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pnl"
	"github.com/rustyeddy/tradebook/trade"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query journal trades",
	Long: `Record, query and move trade journal records.

Subcommands:
  add    - Record a trade with one or more legs
  list   - List trades as Org-mode blocks
  show   - Show one trade
  delete - Delete a trade
  import - Import trades from CSV
  export - Export trades to CSV

Examples:
  tradebook journal add --instrument EUR_USD --date 2024-01-15 --outcome profit \
      --lot 1 --leg LONG,1.1000,1.0950,1.1050,2%
  tradebook journal list
  tradebook journal export trades.csv`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Args:  cobra.NoArgs,
	RunE:  runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalImport,
}

var journalExportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Export trades to CSV (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalExport,
}

var addOpts struct {
	instrument string
	date       string
	openTime   string
	closeTime  string
	outcome    string
	lot        string
	notes      string
	legs       []string
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalImportCmd)
	journalCmd.AddCommand(journalExportCmd)

	f := journalAddCmd.Flags()
	f.StringVar(&addOpts.instrument, "instrument", "", "instrument, e.g. EUR_USD")
	f.StringVar(&addOpts.date, "date", "", "trade date")
	f.StringVar(&addOpts.openTime, "open", "", "open time")
	f.StringVar(&addOpts.closeTime, "close", "", "close time")
	f.StringVar(&addOpts.outcome, "outcome", "", "profit, loss or unset")
	f.StringVar(&addOpts.lot, "lot", "", "lot size")
	f.StringVar(&addOpts.notes, "notes", "", "free-form notes")
	f.StringArrayVar(&addOpts.legs, "leg", nil, "leg as POSITION,ENTRY,SL,TP,RISK[,OUTCOME] (repeatable)")
}

// parseLeg reads POSITION,ENTRY,SL,TP,RISK[,OUTCOME]. Empty fields are allowed.
func parseLeg(s string) (journal.Leg, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 5 || len(parts) > 6 {
		return journal.Leg{}, fmt.Errorf("leg %q: want POSITION,ENTRY,SL,TP,RISK[,OUTCOME]", s)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if _, ok := trade.ParsePosition(parts[0]); !ok {
		return journal.Leg{}, fmt.Errorf("leg %q: unknown position %q", s, parts[0])
	}
	l := journal.Leg{
		Position:        strings.ToUpper(parts[0]),
		EntryPrice:      parts[1],
		StopLossPrice:   parts[2],
		TakeProfitPrice: parts[3],
		Risk:            parts[4],
	}
	if len(parts) == 6 {
		if _, ok := trade.ParseOutcome(parts[5]); !ok {
			return journal.Leg{}, fmt.Errorf("leg %q: unknown outcome %q", s, parts[5])
		}
		l.Outcome = parts[5]
	}
	return l, nil
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	if _, ok := trade.ParseOutcome(addOpts.outcome); !ok {
		return fmt.Errorf("unknown outcome %q", addOpts.outcome)
	}

	e := journal.Entry{
		Instrument: addOpts.instrument,
		Date:       addOpts.date,
		OpenTime:   addOpts.openTime,
		CloseTime:  addOpts.closeTime,
		Outcome:    addOpts.outcome,
		LotSize:    addOpts.lot,
		Notes:      addOpts.notes,
	}
	for _, raw := range addOpts.legs {
		l, err := parseLeg(raw)
		if err != nil {
			return err
		}
		e.Legs = append(e.Legs, l)
	}
	e.FillPips()

	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	e.UserID = ev.user
	e.ID = newTradeID(e)
	if err := ev.store.SaveTrade(cmd.Context(), e); err != nil {
		return fmt.Errorf("save trade: %w", err)
	}
	ev.log.Info("trade recorded", zap.String("trade_id", e.ID), zap.Int("legs", len(e.Legs)))

	saved, err := ev.store.GetTrade(cmd.Context(), ev.user, e.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(saved, evaluate(ev, saved)))
	return nil
}

// newTradeID stamps the id with the trade's own time when it has one, so
// ids sort in trade order.
func newTradeID(e journal.Entry) string {
	if at, ok := e.Times().ResolveTime(); ok {
		return id.NewAt(at)
	}
	return id.New()
}

func runJournalList(cmd *cobra.Command, args []string) error {
	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	entries, err := ev.store.ListTrades(cmd.Context(), ev.user)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	summaries := make([]pnl.Summary, len(entries))
	for i, e := range entries {
		summaries[i] = evaluate(ev, e)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(entries, summaries))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	e, err := ev.store.GetTrade(cmd.Context(), ev.user, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(e, evaluate(ev, e)))
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	if err := ev.store.DeleteTrade(cmd.Context(), ev.user, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	return nil
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	for i := range entries {
		e := &entries[i]
		e.UserID = ev.user
		e.FillPips()
		if e.ID == "" {
			e.ID = newTradeID(*e)
		}
		if err := ev.store.SaveTrade(cmd.Context(), *e); err != nil {
			return fmt.Errorf("import row %d: %w", i+1, err)
		}
	}

	ev.log.Info("import complete", zap.String("file", args[0]), zap.Int("trades", len(entries)))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(entries), args[0])
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	entries, err := ev.store.ListTrades(cmd.Context(), ev.user)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	if len(args) == 0 {
		return journal.WriteCSV(cmd.OutOrStdout(), entries)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := journal.WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(entries), args[0])
	return nil
}

func evaluate(ev *env, e journal.Entry) pnl.Summary {
	def := ev.cfg.Risk.DefaultIsPercentage
	return pnl.EvaluateTrade(e.Record(def), def)
}
