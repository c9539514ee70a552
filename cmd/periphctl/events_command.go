package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"periphd/internal/ipc"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var kind string
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent journal events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Events(kind, limit)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Events) == 0 {
					fmt.Fprintln(stdout, "No events recorded")
					return nil
				}
				rows := make([][]string, 0, len(resp.Events))
				for _, ev := range resp.Events {
					rows = append(rows, []string{
						ev.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						ev.Kind,
						ev.Subject,
						ev.Detail,
					})
				}
				fmt.Fprint(stdout, renderTable(
					[]string{"Time", "Kind", "Subject", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintln(stdout)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only show events of this kind")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	return cmd
}
