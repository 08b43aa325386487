package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/neuroboost/internal/analysis"
	"github.com/abhisek/neuroboost/internal/app"
	"github.com/abhisek/neuroboost/internal/history"
	"github.com/abhisek/neuroboost/internal/llm"
	"github.com/abhisek/neuroboost/internal/riddle"
	"github.com/abhisek/neuroboost/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		History: history.Load(ctx, st.KV()),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.LLMEvents())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI riddles and performance analysis will be unavailable.")
	} else {
		opts.Riddle = riddle.New(provider)
		opts.Analysis = analysis.New(provider)
	}

	return app.Run(opts)
}
