package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizhost/buzzkit/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past matches from the journal",
	Long:  `Display recent matches with their final scores, rebuilt from the judgment journal.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of matches to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("the match journal is disabled (history.enabled: false)")
	}

	db, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	repo := db.HistoryRepository()

	matches, err := repo.RecentMatches(historyLimit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	for _, m := range matches {
		judgments, err := repo.Judgments(m.ID)
		if err != nil {
			return err
		}
		finals := history.FinalScores(m.Players, judgments)

		parts := make([]string, len(finals))
		for i, s := range finals {
			parts[i] = fmt.Sprintf("P%d:%d", i+1, s)
		}
		fmt.Printf("%s  %s  %d players  %d rounds  %s\n",
			m.StartedAt.Local().Format("2006-01-02 15:04"),
			shortID(m.ID), m.Players, len(judgments), strings.Join(parts, "  "))
	}
	return nil
}

// shortID trims a uuid to its first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
