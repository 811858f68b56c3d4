// The generate command runs one report: resolve config, fetch and normalize
// every source, render, write.

package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/dailybrief/config"
	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/fetch"
	"github.com/gaurav-prasanna/dailybrief/core/normalize"
	"github.com/gaurav-prasanna/dailybrief/core/output"
	"github.com/gaurav-prasanna/dailybrief/core/pipeline"
	"github.com/gaurav-prasanna/dailybrief/core/render"
	"github.com/gaurav-prasanna/dailybrief/logger"
)

// Flag variables.
var (
	flagConfig    string
	flagEnvFile   string
	flagOutputDir string
	flagLogLevel  string
	flagMarkdown  bool
	flagPDF       bool
	flagJSON      bool
	flagStrict    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetch every source and write the dashboard",
	Long: `Generate fetches each data source in turn, normalizes it into a table and
writes the dashboard to <output_dir>/index.html. A source that fails is shown
as "Data unavailable" and does not stop the run.

Examples:
  dailybrief generate
  dailybrief generate --output_dir ./public --markdown --pdf
  dailybrief generate --config dailybrief.yaml --strict`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
	generateCmd.Flags().StringVar(&flagEnvFile, "env_file", "", "Env file to load (default: ./.env if present)")
	generateCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: docs)")
	generateCmd.Flags().StringVar(&flagLogLevel, "log_level", "", "Log level: debug, info, warn, error")

	// Extra exports written next to index.html.
	generateCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Also write index.md")
	generateCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Also write index.pdf")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "Also write index.json")

	generateCmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit with status 2 when any section is degraded")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fetcher := fetch.New(fetch.Options{Timeout: cfg.Fetch.Timeout, Headers: cfg.Headers()})
	p := newPipeline(cfg, fetcher, log)

	report := p.Run(cmd.Context(), time.Now())

	for _, r := range selectRenderers() {
		data, err := r.Render(report)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.Extension(), err)
		}
		path, err := writer.WriteReport(r.Extension(), data)
		if err != nil {
			return err
		}
		log.WithField("path", path).Info("report written")
	}

	summary := pipeline.Summary(log, report)
	if flagStrict {
		return summary
	}
	return nil
}

// loadConfig resolves the configuration and applies flag overrides, which
// take precedence over every other layer.
func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(flagConfig, flagEnvFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newPipeline wires every source in report order.
func newPipeline(cfg config.Config, fetcher core.Fetcher, log logrus.FieldLogger) *pipeline.Pipeline {
	indices := pipeline.Source[core.Table]{
		Key:        "indices",
		Title:      "Global Markets",
		Icon:       "📈",
		Normalizer: normalize.NewStaticIndices(),
		Colorize:   true,
	}
	if cfg.Sources.Indices.Live {
		indices.URL = cfg.Sources.Indices.URL
		indices.Normalizer = normalize.NewTradingEconomicsIndices()
	}

	return &pipeline.Pipeline{
		Fetcher: fetcher,
		Log:     log,
		Headlines: pipeline.Source[core.HeadlineList]{
			Key:        core.HeadlinesKey,
			Title:      "Headlines",
			Icon:       "📰",
			URL:        cfg.Sources.Headlines.URL,
			Normalizer: normalize.NewHeadlines(config.HeadlineLimit),
		},
		Tables: []pipeline.Source[core.Table]{
			{
				Key:        "energy",
				Title:      "Energy Prices",
				Icon:       "⚡",
				URL:        cfg.Sources.Energy.URL,
				Normalizer: normalize.NewEnergyPrices(config.EnergyMaxRows),
				Colorize:   true,
			},
			{
				Key:        "marketcap",
				Title:      "EU Market Cap",
				Icon:       "🏢",
				URL:        cfg.Sources.MarketCap.URL,
				Normalizer: normalize.NewMarketCap(config.MarketCapTopN),
				Colorize:   true,
			},
			indices,
			{
				Key:        "weather",
				Title:      "Madrid Forecast",
				Icon:       "🌤",
				URL:        cfg.Sources.Weather.URL,
				Normalizer: normalize.NewWeather(config.ForecastHours),
			},
		},
	}
}

// selectRenderers returns the HTML renderer followed by the requested exports.
func selectRenderers() []core.Renderer {
	renderers := []core.Renderer{render.NewHTMLRenderer()}
	if flagMarkdown {
		renderers = append(renderers, render.NewMarkdownRenderer())
	}
	if flagPDF {
		renderers = append(renderers, render.NewPDFRenderer())
	}
	if flagJSON {
		renderers = append(renderers, render.NewJSONRenderer())
	}
	return renderers
}
