package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"periphd/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the peripheral service loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Start()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				switch {
				case resp.Started:
					fmt.Fprintln(stdout, "Service loop started")
				case resp.Message != "":
					fmt.Fprintln(stdout, resp.Message)
				default:
					fmt.Fprintln(stdout, "Service loop not started")
				}
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the peripheral service loop and release hardware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp.Stopped {
					fmt.Fprintln(stdout, "Service loop stopped")
				} else {
					fmt.Fprintln(stdout, "Service loop was not running")
				}
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and peripheral status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)
				st := resp.Status

				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				runningKind := statusError
				runningDetail := "stopped"
				if st.Orchestrator.Running {
					runningKind = statusOK
					runningDetail = fmt.Sprintf("up %s", (time.Duration(st.Orchestrator.UptimeSec) * time.Second).String())
				}
				fmt.Fprintln(stdout, renderStatusLine("Service loop", runningKind, runningDetail, colorize))
				readyKind := statusOK
				if !st.Orchestrator.Ready {
					readyKind = statusError
				}
				fmt.Fprintln(stdout, renderStatusLine("Peripheral host", readyKind, readiness(st.Orchestrator.Ready), colorize))
				fmt.Fprintln(stdout, renderStatusLine("PID", statusInfo, fmt.Sprintf("%d", st.PID), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, st.SocketPath, colorize))
				if st.SessionID != "" {
					fmt.Fprintln(stdout, renderStatusLine("Session", statusInfo, st.SessionID, colorize))
				}
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Peripherals", colorize) {
					fmt.Fprintln(stdout, line)
				}
				if len(st.Orchestrator.Peripherals) == 0 {
					fmt.Fprintln(stdout, renderStatusLine("Enabled", statusWarn, "none configured", colorize))
				} else {
					fmt.Fprintln(stdout, renderStatusLine("Enabled", statusOK, strings.Join(st.Orchestrator.Peripherals, ", "), colorize))
				}
				if st.Orchestrator.Page != "" {
					fmt.Fprintln(stdout, renderStatusLine("Display page", statusInfo, st.Orchestrator.Page, colorize))
				}
				fmt.Fprintln(stdout, renderStatusLine("Fan running", statusInfo, yesNo(st.Orchestrator.FanRunning), colorize))

				if len(st.Orchestrator.Services) > 0 {
					fmt.Fprintln(stdout)
					for _, line := range renderSectionHeader("Services", colorize) {
						fmt.Fprintln(stdout, line)
					}
					fmt.Fprint(stdout, renderTable(
						[]string{"Service", "Backend", "Target", "State"},
						serviceRows(st.Orchestrator.Services),
						[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
					))
					fmt.Fprintln(stdout)
				}
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}
