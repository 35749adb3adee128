package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/db"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/pathutil"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/shell"
	"github.com/spf13/cobra"
)

var historySession string

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display journaled sessions",
	Long: `Display sessions recorded in a journal file.

Shows:
- Total number of sessions and events
- Last session timestamp
- One line per session with its final balance and loan

With --session, prints every event of that session instead.

The journal must be a file (set --journal or VALLEY_JOURNAL_PATH).
In-memory journals are gone once play exits.

Example:
  forbidden-valley history --journal journal.db
  forbidden-valley history --journal journal.db --session 3f2a...`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&journalPath, "journal", "", "SQLite journal file")
	historyCmd.Flags().StringVar(&historySession, "session", "", "show the events of one session")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := *appConfig
	if journalPath != "" {
		cfg.Storage.JournalPath = journalPath
	}

	// Validate required fields
	if err := cfg.Validate([]string{"storage", "journalPath"}); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		DataRoot:    cfg.Storage.DataRoot,
		JournalPath: cfg.Storage.JournalPath,
		ExportDir:   cfg.Storage.ExportDir,
	})
	if pathResolver.IsMemoryJournal() {
		exitOnError(fmt.Errorf("journal path %q is in memory", cfg.Storage.JournalPath), "invalid configuration")
	}
	if !pathResolver.FileExists(pathResolver.GetJournalPath()) {
		exitOnError(fmt.Errorf("journal not found: %s", pathResolver.GetJournalPath()), "invalid configuration")
	}

	dbPath := pathResolver.GetJournalPath()
	slog.Debug("Opening journal", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open journal")
	defer conn.Close()

	journal := db.NewJournal(conn)
	out := cmd.OutOrStdout()

	if historySession != "" {
		events, err := journal.Events(historySession)
		exitOnError(err, "failed to read session events")
		if len(events) == 0 {
			fmt.Fprintf(out, "No events recorded for session %s\n", historySession)
			return
		}
		shell.PrintEvents(out, events)
		return
	}

	stats, err := journal.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Fprintln(out, "\n=== Journal Statistics ===")
	fmt.Fprintf(out, "Total sessions: %d\n", stats.TotalSessions)
	fmt.Fprintf(out, "Total events:   %d\n", stats.TotalEvents)
	if stats.LastSession.Valid {
		fmt.Fprintf(out, "Last session:   %s\n", stats.LastSession.String)
	} else {
		fmt.Fprintf(out, "Last session:   (never)\n")
	}
	fmt.Fprintln(out)

	sessions, err := journal.Sessions()
	exitOnError(err, "failed to list sessions")
	if len(sessions) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SESSION\tSTART\tRATE\tEVENTS\tBALANCE\tLOAN\n")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.ID,
			s.StartDate,
			s.DailyRate.String(),
			s.EventCount,
			nullAmount(s.Balance.Valid, s.Balance.Decimal.StringFixed(2)),
			nullAmount(s.Loan.Valid, s.Loan.Decimal.StringFixed(2)),
		)
	}
	w.Flush()

	slog.Debug("History displayed", "sessions", len(sessions))
}

func nullAmount(valid bool, s string) string {
	if !valid {
		return "-"
	}
	return s
}
