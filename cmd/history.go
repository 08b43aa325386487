package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/neuroboost/internal/history"
	"github.com/abhisek/neuroboost/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded game results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		results := history.Load(context.Background(), st.KV()).All()
		if len(results) == 0 {
			fmt.Println("No games recorded yet.")
			return nil
		}

		fmt.Printf("%-19s  %-12s  %6s  %s\n", "Date", "Game", "Score", "Details")
		fmt.Println(strings.Repeat("─", 60))

		shown := 0
		for i := len(results) - 1; i >= 0; i-- {
			if limit > 0 && shown >= limit {
				break
			}
			r := results[i]
			fmt.Printf("%-19s  %-12s  %6d  %s\n",
				r.Date.Local().Format("2006-01-02 15:04:05"),
				r.Type,
				r.Score,
				r.Details,
			)
			shown++
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of results to show (0 for all)")
}
