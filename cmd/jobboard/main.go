// Package main provides the jobboard command line: a job-posting form
// editor, a client of the job service, and the form API server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/importer"
	"github.com/jonathan/jobboard/internal/jobapi"
	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/logging"
)

var (
	configPath string
	apiURL     string
	verbose    bool

	// Resolved in PersistentPreRunE
	settings config.Config
	logger   = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:               "jobboard",
	Short:             "Job posting form editor and job service client",
	Long:              "jobboard edits job postings as nested form documents, submits them to the job service, and serves the same form over HTTP.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Job service base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	cfg.Verbose = cfg.Verbose || verbose

	l, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	settings = cfg
	logger = l
	logger.Debug("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("template", cfg.Template),
		zap.String("time_zone", cfg.TimeZone),
	)
	return nil
}

// newClient builds a job service client from the resolved settings.
func newClient() (*jobapi.Client, error) {
	return jobapi.NewClient(settings.APIBaseURL, &jobapi.Options{
		Timeout: settings.RequestTimeout(),
		Logger:  logger,
	})
}

// newProjector reads zoneless deadlines in the configured time zone.
func newProjector() (jobform.Projector, error) {
	loc, err := settings.Location()
	if err != nil {
		return jobform.Projector{}, err
	}
	return jobform.Projector{Now: time.Now, Location: loc}, nil
}

// templateSource returns the document new forms start from: the file at
// path, else the configured template, else the built-in default.
func templateSource(path string) (func() (*formstore.Document, error), error) {
	if path == "" {
		path = settings.Template
	}
	if path == "" {
		return func() (*formstore.Document, error) {
			return jobform.DefaultTemplate(time.Now()), nil
		}, nil
	}
	doc, err := jobform.LoadTemplate(path)
	if err != nil {
		return nil, err
	}
	return func() (*formstore.Document, error) { return doc, nil }, nil
}

// openForm starts a form from the template at path and, when pageURL is
// set, pre-fills it from that job page.
func openForm(ctx context.Context, path, pageURL string, render bool) (jobform.Form, error) {
	source, err := templateSource(path)
	if err != nil {
		return jobform.Form{}, err
	}
	doc, err := source()
	if err != nil {
		return jobform.Form{}, err
	}
	form := jobform.New(doc)
	if pageURL == "" {
		return form, nil
	}

	posting, err := importer.Import(ctx, pageURL, &importer.Options{
		Timeout: settings.RequestTimeout(),
		Render:  render,
		Logger:  logger,
	})
	if err != nil {
		return form, fmt.Errorf("failed to import %s: %w", pageURL, err)
	}
	logger.Debug("imported job page",
		zap.String("url", pageURL),
		zap.String("platform", string(posting.Platform)),
		zap.String("title", posting.Title),
	)
	return posting.Apply(form)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
