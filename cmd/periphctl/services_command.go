package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"periphd/internal/health"
	"periphd/internal/ipc"
)

func newServicesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "Show watched service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				services := resp.Status.Orchestrator.Services
				if len(services) == 0 {
					fmt.Fprintln(stdout, "No services configured")
					return nil
				}
				fmt.Fprint(stdout, renderTable(
					[]string{"Service", "Backend", "Target", "State"},
					serviceRows(services),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintln(stdout)
				return nil
			})
		},
	}
}

func serviceRows(services []health.Status) [][]string {
	rows := make([][]string, 0, len(services))
	for _, svc := range services {
		state := "DOWN"
		if svc.Healthy {
			state = "OK"
		}
		rows = append(rows, []string{svc.Label, string(svc.Backend), svc.Name, state})
	}
	return rows
}
