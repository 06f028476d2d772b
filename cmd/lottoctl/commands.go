package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ArowuTest/lotto645-backend/internal/app"
	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/models"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a draw history CSV into the repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open file: %w", err)
				}
				defer f.Close()

				result, err := a.DrawService.ImportCSV(cmd.Context(), f)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), "yaml", result)
			})
		},
	}
}

func newSyncCmd() *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch rounds from the official results API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.DrawService.SyncOfficial(cmd.Context(), start, end)
				if result != nil {
					if rerr := render(cmd.OutOrStdout(), "yaml", result); rerr != nil {
						return rerr
					}
				}
				return err
			})
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First round (0 = after the latest stored round)")
	cmd.Flags().IntVar(&end, "end", 0, "Last round (0 = latest official round)")
	return cmd
}

// statsReport is the printable form of a window's statistics
type statsReport struct {
	End       int                       `yaml:"end" json:"end"`
	Count     int                       `yaml:"count" json:"count"`
	Draws     int                       `yaml:"draws" json:"draws"`
	Frequency map[int]int               `yaml:"frequency" json:"frequency"`
	Ranges    map[string]map[string]int `yaml:"ranges" json:"ranges"`
	Top       []string                  `yaml:"top" json:"top"`
	Bottom    string                    `yaml:"bottom" json:"bottom"`
	Shares    []engine.RangeShare       `yaml:"shares" json:"shares"`
}

func newStatsCmd() *cobra.Command {
	var end, count int
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print number and range frequencies over a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if count <= 0 {
					count = a.Config.Engine.DefaultWindow
				}
				draws := a.DrawService.Window(end, count)
				freq := engine.NumberFrequency(draws)
				table := engine.RangeTableFrom(freq)

				report := statsReport{
					End:       end,
					Count:     count,
					Draws:     len(draws),
					Frequency: make(map[int]int, engine.MaxNumber),
					Ranges:    table.Map(),
					Top:       engine.TopRanges(table, 2),
					Bottom:    engine.BottomRange(table),
					Shares:    engine.RangeShares(table),
				}
				if len(draws) > 0 {
					report.End = draws[len(draws)-1].DrawNumber
				}
				for n := 1; n <= engine.MaxNumber; n++ {
					report.Frequency[n] = freq.Count(n)
				}
				return render(cmd.OutOrStdout(), format, report)
			})
		},
	}
	cmd.Flags().IntVar(&end, "end", 0, "Last draw of the window (0 = latest)")
	cmd.Flags().IntVar(&count, "count", 0, "Window size (0 = configured default)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var req models.CombinationRequest
	var seed int64
	var format string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate uniform or frequency-weighted combinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				if seed >= 0 {
					s := uint64(seed)
					req.Seed = &s
				}
				resp, err := a.CombinationService.Generate(cmd.Context(), &req)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), format, resp)
			})
		},
	}
	cmd.Flags().StringVar(&req.Mode, "mode", "uniform", "uniform or weighted")
	cmd.Flags().IntVar(&req.Count, "count", 5, "Number of combinations (1-20)")
	cmd.Flags().IntVar(&req.Window, "window", 0, "Draws used for weights (0 = configured default)")
	cmd.Flags().IntVar(&req.End, "end", 0, "Last draw of the weight window (0 = latest)")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Seed for reproducible output (-1 = random)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: yaml or json")
	return cmd
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown format %q", format)
}
