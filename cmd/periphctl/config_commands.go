package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"periphd/internal/config"
	"periphd/internal/ipc"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigSetCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}
			written, err := config.WriteSample(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", written)
			fmt.Fprintln(out, "Edit the peripherals list to match the hardware on this board before starting periphd.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				_, err := ctx.ensureConfig()
				return err
			}
			out := cmd.OutOrStdout()
			rows := [][]string{
				{"peripherals", strings.Join(cfg.Daemon.Peripherals, ", ")},
				{"interval", fmt.Sprintf("%.2gs", cfg.Daemon.Interval)},
				{"log_dir", cfg.Daemon.LogDir},
				{"display.enabled", yesNo(cfg.Display.Enabled)},
				{"display.rotation", fmt.Sprintf("%d", cfg.Display.Rotation)},
				{"display.temperature_unit", cfg.Display.TemperatureUnit},
				{"rgb.enabled", yesNo(cfg.RGB.Enabled)},
				{"rgb.style", cfg.RGB.Style},
				{"rgb.color", cfg.RGB.Color},
				{"fan.on_temp_c", fmt.Sprintf("%.1f", cfg.Fan.OnTempC)},
				{"fan.off_temp_c", fmt.Sprintf("%.1f", cfg.Fan.OffTempC)},
				{"services", fmt.Sprintf("%d configured", len(cfg.Services))},
				{"ntfy_topic", cfg.Notifications.NtfyTopic},
			}
			fmt.Fprint(out, renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			fmt.Fprintln(out)
			return nil
		},
	}
}

// setFlagValues holds every `config set` flag value; only the flags the user
// actually passed make it into the partial.
type setFlagValues struct {
	tempUnit      string
	rotation      int
	displayOn     bool
	brightness    int
	interval      float64
	rgbOn         bool
	rgbColor      string
	rgbBrightness int
	rgbStyle      string
	rgbSpeed      int
	fanOn         float64
	fanOff        float64
}

func buildConfigPartial(v setFlagValues, changed func(string) bool) config.Partial {
	var partial config.Partial
	if changed("temp-unit") {
		partial.TemperatureUnit = &v.tempUnit
	}
	if changed("rotation") {
		partial.OLEDRotation = &v.rotation
	}
	if changed("display") {
		partial.OLEDEnable = &v.displayOn
	}
	if changed("brightness") {
		partial.OLEDBrightness = &v.brightness
	}
	if changed("interval") {
		partial.Interval = &v.interval
	}

	var rgb config.RGBPartial
	rgbChanged := false
	if changed("rgb") {
		rgb.Enabled = &v.rgbOn
		rgbChanged = true
	}
	if changed("rgb-color") {
		rgb.Color = &v.rgbColor
		rgbChanged = true
	}
	if changed("rgb-brightness") {
		rgb.Brightness = &v.rgbBrightness
		rgbChanged = true
	}
	if changed("rgb-style") {
		rgb.Style = &v.rgbStyle
		rgbChanged = true
	}
	if changed("rgb-speed") {
		rgb.Speed = &v.rgbSpeed
		rgbChanged = true
	}
	if rgbChanged {
		partial.RGB = &rgb
	}

	if changed("fan-on") || changed("fan-off") {
		partial.Fan = &config.FanPartial{}
		if changed("fan-on") {
			partial.Fan.OnTempC = &v.fanOn
		}
		if changed("fan-off") {
			partial.Fan.OffTempC = &v.fanOff
		}
	}

	return partial
}

func newConfigSetCommand(ctx *commandContext) *cobra.Command {
	var values setFlagValues

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Apply a live configuration change to the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			partial := buildConfigPartial(values, cmd.Flags().Changed)
			if partial.Empty() {
				return fmt.Errorf("no settings given; see `periphctl config set --help`")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.UpdateConfig(ipc.ConfigUpdateRequest{Partial: partial})
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp.Applied {
					fmt.Fprintln(stdout, "Configuration updated")
					return nil
				}
				if resp.Message != "" {
					return fmt.Errorf("update rejected: %s", resp.Message)
				}
				return fmt.Errorf("update rejected")
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&values.tempUnit, "temp-unit", "C", "Temperature unit for the display (C or F)")
	flags.IntVar(&values.rotation, "rotation", 0, "Display rotation in degrees (0 or 180)")
	flags.BoolVar(&values.displayOn, "display", true, "Enable or disable the display")
	flags.IntVar(&values.brightness, "brightness", 100, "Display brightness percent (0-100)")
	flags.Float64Var(&values.interval, "interval", 1, "Service loop interval in seconds")
	flags.BoolVar(&values.rgbOn, "rgb", true, "Enable or disable the lighting strip")
	flags.StringVar(&values.rgbColor, "rgb-color", "", "Lighting color as #rrggbb")
	flags.IntVar(&values.rgbBrightness, "rgb-brightness", 100, "Lighting brightness percent (0-100)")
	flags.StringVar(&values.rgbStyle, "rgb-style", "", "Lighting style (solid, breathe, rainbow)")
	flags.IntVar(&values.rgbSpeed, "rgb-speed", 1, "Lighting animation speed")
	flags.Float64Var(&values.fanOn, "fan-on", 0, "Fan on threshold in Celsius (set with --fan-off)")
	flags.Float64Var(&values.fanOff, "fan-off", 0, "Fan off threshold in Celsius (set with --fan-on)")

	return cmd
}
