package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"chatlist/internal/diag"

	"github.com/spf13/cobra"
)

// failuresCmd shows the gateway failure journal
var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "Show recent gateway failures",
	Long: `The interactive interface stays quiet when the server rejects a request.
Every failure is journaled locally; this command prints the most recent ones.`,
	Args: cobra.NoArgs,
	RunE: showFailures,
}

func showFailures(cmd *cobra.Command, args []string) error {
	cfg, dir, err := resolveConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := cfg.DiagnosticsPath(dir)
	if path == "" {
		fmt.Fprintln(out, "Diagnostics journal is disabled (diagnostics.enabled: false).")
		return nil
	}

	store, err := diag.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	ctx, stop := signalContext()
	defer stop()

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No failures recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tOP\tTARGET\tSTATUS\tMESSAGE")
	for _, e := range entries {
		status := "-"
		if e.Status != 0 {
			status = fmt.Sprint(e.Status)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.At.Local().Format(time.RFC3339), e.Op, e.Target, status, e.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nShowing %d of %d recorded failures.\n", len(entries), total)
	return nil
}
