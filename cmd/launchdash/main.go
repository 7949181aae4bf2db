package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"launchdash/internal/bootstrap"
	dashboarddomain "launchdash/internal/modules/dashboard/domain"
	dashboarddto "launchdash/internal/modules/dashboard/dto"
	"launchdash/internal/platform/config"
	"launchdash/internal/platform/format"
	"launchdash/internal/platform/logging"
	"launchdash/internal/platform/markdown"
	"launchdash/internal/platform/slug"
	summaryview "launchdash/internal/ui/views/summary"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	dataURL    string
	addr       string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "launchdash",
		Short:         "SpaceX launch records dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.dataURL, "data", "", "launch CSV location (URL or file path)")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "dashboard listen address")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newSitesCmd(opts))
	root.AddCommand(newPieCmd(opts))
	root.AddCommand(newScatterCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newSnapshotCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if v := strings.TrimSpace(opts.dataURL); v != "" {
		cfg.DataURL = v
	}
	if v := strings.TrimSpace(opts.addr); v != "" {
		cfg.Addr = v
	}
	return cfg, nil
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log, opts.verbose)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

func closeApp(app *bootstrap.App) {
	_ = app.Logger.Sync()
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			return bootstrap.Serve(ctx, app)
		},
	}
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			return bootstrap.RunTUI(app)
		},
	}
}

func newSitesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "Print per-site launch statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			rows, err := app.LaunchesCLI.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no launches")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), summaryview.Render(rows))
			return nil
		},
	}
}

func newPieCmd(opts *rootOptions) *cobra.Command {
	var site string
	var asJSON bool

	pie := &cobra.Command{
		Use:   "pie",
		Short: "Print the launch outcome pie for a site",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			fig, err := app.DashboardCLI.Pie(cmd.Context(), site)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), fig)
			}
			t := format.NewTable(format.Terminal, "Slice", "Value", "Share")
			t.AlignRight(2, 3)
			total := 0.0
			for _, s := range fig.Slices {
				total += s.Value
			}
			for _, s := range fig.Slices {
				t.Row(s.Label, s.Value, share(s.Value, total))
			}
			t.Footer("Total", total, "")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", fig.Title, t.String())
			return nil
		},
	}
	pie.Flags().StringVar(&site, "site", dashboarddomain.AllSites, "launch site or ALL")
	pie.Flags().BoolVar(&asJSON, "json", false, "print the figure as JSON")
	return pie
}

func newScatterCmd(opts *rootOptions) *cobra.Command {
	var sel selection
	var asJSON bool

	scatter := &cobra.Command{
		Use:   "scatter",
		Short: "Print the payload vs outcome points for a selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if err := sel.resolve(cmd, app); err != nil {
				return err
			}
			fig, err := app.DashboardCLI.Scatter(cmd.Context(), sel.site, sel.low, sel.high)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), fig)
			}
			t := format.NewTable(format.Terminal, "Group", "Payload kg", "Outcome")
			t.AlignRight(2)
			for _, p := range fig.Points {
				t.Row(p.Group, p.X, outcomeLabel(fig, p.Y))
			}
			t.Footer("Points", len(fig.Points), "")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", fig.Title, t.String())
			return nil
		},
	}
	sel.bind(scatter)
	scatter.Flags().BoolVar(&asJSON, "json", false, "print the figure as JSON")
	return scatter
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var sel selection
	var outDir, imageFormat string
	var width, height int

	render := &cobra.Command{
		Use:   "render",
		Short: "Write the pie and scatter charts for a selection as SVG or PNG",
		Long:  "Write <kind>_<site>.<format> files, for example pie_ccafs-lc-40.svg, into --out.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if err := sel.resolve(cmd, app); err != nil {
				return err
			}
			pie, err := app.DashboardCLI.Pie(cmd.Context(), sel.site)
			if err != nil {
				return err
			}
			scatter, err := app.DashboardCLI.Scatter(cmd.Context(), sel.site, sel.low, sel.high)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			for _, fig := range []dashboarddto.FigureOutput{pie, scatter} {
				out, err := app.DashboardCLI.Render(cmd.Context(), fig, imageFormat, width, height)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, slug.Join(fig.Kind, sel.site)+"."+strings.ToLower(imageFormat))
				if err := os.WriteFile(path, out.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(out.Data))
			}
			return nil
		},
	}
	sel.bind(render)
	render.Flags().StringVar(&outDir, "out", ".", "output directory")
	render.Flags().StringVar(&imageFormat, "format", "svg", "image format: svg|png")
	render.Flags().IntVar(&width, "width", 0, "image width (defaults to config)")
	render.Flags().IntVar(&height, "height", 0, "image height (defaults to config)")
	return render
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	var raw bool
	var width int

	report := &cobra.Command{
		Use:   "report",
		Short: "Print a Markdown launch summary, or merge it into a Markdown file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.LaunchesCLI.Report(cmd.Context())
			if err != nil {
				return err
			}
			if outPath != "" {
				if err := mergeReport(outPath, out.Markdown, map[string]any{
					"launchdash_source":    out.Location,
					"launchdash_rows":      out.Rows,
					"launchdash_loaded_at": out.LoadedAt.UTC().Format(time.RFC3339),
				}); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", outPath)
				return nil
			}
			if raw {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Markdown)
				return nil
			}
			rendered, err := markdown.Terminal(out.Markdown, width)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	report.Flags().StringVar(&outPath, "out", "", "Markdown file to create or update")
	report.Flags().BoolVar(&raw, "raw", false, "print Markdown without terminal styling")
	report.Flags().IntVar(&width, "width", 100, "word wrap width for terminal output")
	return report
}

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var dbPath string

	snapshot := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the normalized launch table to SQLite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeApp(app)
			path := dbPath
			if path == "" {
				path = app.Config.SnapshotPath
			}
			out, err := app.LaunchesCLI.Snapshot(cmd.Context(), path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s: %d rows -> %s\n", out.ID, out.Rows, out.Path)
			return nil
		},
	}
	snapshot.Flags().StringVar(&dbPath, "db", "", "SQLite file (defaults to config snapshot_path)")
	return snapshot
}

// selection holds the site and payload range flags shared by scatter and
// render. Unset bounds fall back to the initial slider value.
type selection struct {
	site      string
	low, high float64
}

func (s *selection) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.site, "site", dashboarddomain.AllSites, "launch site or ALL")
	cmd.Flags().Float64Var(&s.low, "low", 0, "lowest payload kg (defaults to dataset minimum)")
	cmd.Flags().Float64Var(&s.high, "high", 0, "highest payload kg (defaults to dataset maximum)")
}

func (s *selection) resolve(cmd *cobra.Command, app *bootstrap.App) error {
	lowSet, highSet := cmd.Flags().Changed("low"), cmd.Flags().Changed("high")
	if lowSet && highSet {
		return nil
	}
	layout, err := app.DashboardCLI.Layout(cmd.Context())
	if err != nil {
		return err
	}
	if !lowSet {
		s.low = float64(layout.Slider.Value[0])
	}
	if !highSet {
		s.high = float64(layout.Slider.Value[1])
	}
	return nil
}

func mergeReport(path, report string, meta map[string]any) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	current, body, err := markdown.Split(string(existing))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for k, v := range meta {
		current[k] = v
	}
	doc, err := markdown.Join(current, markdown.ReplaceBlock(body, report))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func share(v, total float64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v/total*100)
}

func outcomeLabel(fig dashboarddto.FigureOutput, y float64) string {
	for _, tick := range fig.YAxis.Ticks {
		if tick.Value == y {
			return tick.Label
		}
	}
	return fmt.Sprintf("%g", y)
}
