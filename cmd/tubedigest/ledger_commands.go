package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tubedigest/internal/ledger"
	"tubedigest/internal/logging"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the processed-video ledger",
	}
	ledgerCmd.AddCommand(newLedgerListCommand(ctx))
	ledgerCmd.AddCommand(newLedgerPathCommand(ctx))
	return ledgerCmd
}

func newLedgerListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed videos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			completed := ledger.Open(cfg.LedgerPath(), logging.NewNop())
			if completed.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Ledger is empty")
				return nil
			}

			entries := completed.Entries()
			ids := completed.IDs()
			if limit > 0 && limit < len(ids) {
				ids = ids[:limit]
			}

			rows := make([]table.Row, 0, len(ids))
			for _, id := range ids {
				entry := entries[id]
				rows = append(rows, table.Row{
					id,
					entry.SourceID,
					entry.Title,
					entry.ProcessedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"Video", "Channel", "Title", "Processed"},
				rows,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%s of %s shown\n",
				strconv.Itoa(len(ids)), strconv.Itoa(completed.Len()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to show (0 = all)")
	return cmd
}

func newLedgerPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the ledger file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.LedgerPath())
			return nil
		},
	}
}
