package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pigeonworks-llc/forbidden-valley/pkg/beancount"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/config"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/converter"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/db"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/pathutil"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/scenario"
	"github.com/pigeonworks-llc/forbidden-valley/pkg/shell"
	"github.com/spf13/cobra"
)

var (
	scenarioPath string
	journalPath  string
	exportFlag   bool
	exportDir    string
)

// playCmd represents the play command.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one session",
	Long: `Play one session of the loan simulation on the console.

This command:
1. Asks for a starting date (MM/DD/YY)
2. Asks you to choose a loan amount
3. Advances the warm-up days, accruing interest on the loan
4. Opens the menu: show balance, deposit, pay loan, withdraw,
   advance one day, history, exit
5. Optionally exports the session as a Beancount file

Nothing carries over between sessions. The journal is in memory unless
--journal points at a file.

Example:
  forbidden-valley play
  forbidden-valley play --scenario scenario.yaml --export --export-dir ./out`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario YAML file (default: built-in scenario)")
	playCmd.Flags().StringVar(&journalPath, "journal", "", "SQLite journal file (default: in memory)")
	playCmd.Flags().BoolVar(&exportFlag, "export", false, "export the session as Beancount when it ends")
	playCmd.Flags().StringVar(&exportDir, "export-dir", "", "directory for Beancount exports (default: <data root>/exports)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := applyPlayFlags(*appConfig)

	slog.Debug("Loading scenario", "path", cfg.Game.ScenarioPath)
	sc, err := scenario.Load(cfg.Game.ScenarioPath)
	exitOnError(err, "failed to load scenario")

	pathResolver := pathutil.New(pathutil.Config{
		DataRoot:    cfg.Storage.DataRoot,
		JournalPath: cfg.Storage.JournalPath,
		ExportDir:   cfg.Storage.ExportDir,
	})

	slog.Debug("Opening journal", "path", pathResolver.GetJournalPath())
	conn, err := db.Open(pathResolver.GetJournalPath())
	exitOnError(err, "failed to open journal")
	defer conn.Close()

	journal := db.NewJournal(conn)

	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), sc, journal, slog.Default())
	sess, err := sh.Run(cmd.Context())
	if errors.Is(err, shell.ErrInvalidStartDate) || errors.Is(err, shell.ErrInputClosed) {
		slog.Debug("Session aborted", "error", err)
		return
	}
	exitOnError(err, "session failed")

	if !cfg.Storage.Export {
		return
	}
	if sess.ID == "" {
		slog.Warn("Session was not journaled, skipping export")
		return
	}

	events, err := journal.Events(sess.ID)
	exitOnError(err, "failed to read session events")

	repo := beancount.NewFileSystemRepository(pathResolver)
	cvtr := converter.NewConverter(sc.Accounts, sc.Currency)
	err = cvtr.Export(repo, sess.ID, sess.Start, events)
	exitOnError(err, "failed to export session")

	filePath, _ := pathResolver.GetSessionFilePath(sess.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Session exported to %s\n", filePath)
	slog.Info("Session exported", "session_id", sess.ID, "path", filePath, "events", len(events))
}

// applyPlayFlags overrides configuration values with explicitly set flags.
func applyPlayFlags(cfg config.Config) config.Config {
	if scenarioPath != "" {
		cfg.Game.ScenarioPath = scenarioPath
	}
	if journalPath != "" {
		cfg.Storage.JournalPath = journalPath
	}
	if exportFlag {
		cfg.Storage.Export = true
	}
	if exportDir != "" {
		cfg.Storage.ExportDir = exportDir
	}
	return cfg
}
