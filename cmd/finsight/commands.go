package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Thareesha98/FinanceML-sub002/internal/analytics"
	"github.com/Thareesha98/FinanceML-sub002/internal/config"
	"github.com/Thareesha98/FinanceML-sub002/internal/store"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var a *app

	root := &cobra.Command{
		Use:   "finsight",
		Short: "Forecast spending and explain a user's finances",
		Long: `Finsight forecasts monthly spending, produces narrative insights and a
financial health score, and flags anomalous and recurring charges from a
user's transactions and budgets.

With the default memory backend the store is seeded with deterministic demo
data, so every command works without cloud credentials.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = setup(cmd, flags)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a config file (toml, yaml or json)")
	pf.StringVar(&flags.userID, "user", "", "user ID to analyse (default demo.user_id)")
	pf.StringVar(&flags.now, "now", "", "reference date as YYYY-MM-DD (default today)")
	pf.StringVar(&flags.backend, "backend", "", "data backend: memory, firestore or bigquery")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	current := func() *app { return a }
	root.AddCommand(
		newForecastCmd(current),
		newInsightsCmd(current),
		newHistoryCmd(current),
		newAnomaliesCmd(current),
		newRecurringCmd(current),
		newProgressCmd(current),
		newSeedCmd(current),
	)
	return root
}

func newForecastCmd(current func() *app) *cobra.Command {
	var horizon int
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast monthly spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if !cmd.Flags().Changed("horizon") {
				horizon = a.cfg.Forecast.Horizon
			}
			result, err := a.engine.GenerateForecast(cmd.Context(), a.userID, analytics.ForecastOptions{Horizon: horizon, Now: a.now})
			if err != nil {
				return err
			}
			return renderForecast(a.out, result)
		},
	}
	cmd.Flags().IntVar(&horizon, "horizon", analytics.DefaultHorizon, "number of months to forecast")
	return cmd
}

func newInsightsCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show spending insights, budget advice, savings goals and the health score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			report, err := a.engine.GenerateInsights(cmd.Context(), a.userID, a.now)
			if err != nil {
				return err
			}
			return renderInsights(a.out, report)
		},
	}
}

func newHistoryCmd(current func() *app) *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "history <category>",
		Short: "Show monthly totals for one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			history, err := a.engine.CategoryHistory(cmd.Context(), a.userID, args[0], months, a.now)
			if err != nil {
				return err
			}
			return renderHistory(a.out, args[0], history)
		},
	}
	cmd.Flags().IntVar(&months, "months", 6, "number of trailing months")
	return cmd
}

func newAnomaliesCmd(current func() *app) *cobra.Command {
	var opts analytics.AnomalyOptions
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Flag unusually large expenses and first-time merchants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if !cmd.Flags().Changed("lookback") {
				opts.LookbackDays = a.cfg.Anomaly.LookbackDays
			}
			if !cmd.Flags().Changed("sensitivity") {
				opts.Sensitivity = a.cfg.Anomaly.Sensitivity
			}
			report, err := a.engine.DetectAnomalies(cmd.Context(), a.userID, opts, a.now)
			if err != nil {
				return err
			}
			return renderAnomalies(a.out, report)
		},
	}
	cmd.Flags().IntVar(&opts.LookbackDays, "lookback", 90, "days of history to examine")
	cmd.Flags().Float64Var(&opts.Sensitivity, "sensitivity", 0.5, "0 flags only extreme outliers, 1 flags more")
	return cmd
}

func newRecurringCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recurring",
		Short: "List subscriptions and other recurring charges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			charges, err := a.engine.DetectRecurring(cmd.Context(), a.userID)
			if err != nil {
				return err
			}
			return renderRecurring(a.out, charges)
		},
	}
}

func newProgressCmd(current func() *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "progress [budget-id]",
		Short: "Show how much of a budget has been spent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if a.store == nil {
				return fmt.Errorf("budget progress needs a store backend, not %q", a.cfg.Backend)
			}
			ids := args
			if len(ids) == 0 {
				budgets, _, err := a.store.ListBudgets(cmd.Context(), a.userID, all, a.cfg.PageSize, "")
				if err != nil {
					return err
				}
				for _, b := range budgets {
					ids = append(ids, b.ID)
				}
			}
			for _, id := range ids {
				budget, err := a.store.GetBudget(cmd.Context(), id)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no budget with ID %s", id)
				}
				if err != nil {
					return err
				}
				progress, err := a.store.GetBudgetProgress(cmd.Context(), id, a.now)
				if err != nil {
					return err
				}
				if err := renderProgress(a.out, budget, progress); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include inactive budgets")
	return cmd
}

func newSeedCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write six months of demo transactions and budgets for --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			switch a.cfg.Backend {
			case config.BackendFirestore:
			case config.BackendMemory:
				_, err := fmt.Fprintln(a.out, "The memory backend is seeded on every run; use --backend firestore to persist demo data.")
				return err
			default:
				return fmt.Errorf("cannot seed the read-only %q backend", a.cfg.Backend)
			}
			start := time.Now()
			summary, err := store.SeedDemo(cmd.Context(), a.store, a.userID, a.now, a.cfg.Demo.Seed)
			if err != nil {
				return err
			}
			a.log.Info().
				Str("user_id", a.userID).
				Int("transactions", summary.Transactions).
				Int("budgets", summary.Budgets).
				Dur("took", time.Since(start)).
				Msg("demo data written")
			_, err = fmt.Fprintf(a.out, "Seeded %d transactions and %d budgets for %s\n", summary.Transactions, summary.Budgets, a.userID)
			return err
		},
	}
}
