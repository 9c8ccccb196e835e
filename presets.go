package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/iburimskiy/brainwave-visualizer/internal/preset"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the waveform style presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), presetTable().Render())
		return err
	},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8D7053")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

func presetTable() *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#2D5016"))).
		Headers("STYLE", "FREQ", "AMPLITUDE", "WAVES", "SPEED", "IRREGULAR", "HEARTBEAT", "PULSE")

	for _, s := range preset.Styles() {
		p := preset.Lookup(string(s))
		t.Row(
			string(s),
			formatFloat(p.Frequency),
			formatFloat(p.Amplitude),
			strconv.Itoa(p.WaveCount),
			formatFloat(p.Speed),
			formatFloat(p.Irregularity),
			formatFloat(p.HeartbeatMix),
			preset.PulsePeriod(s).String(),
		)
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0:
			return cellStyle
		default:
			return numberStyle
		}
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
