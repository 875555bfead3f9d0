// Package main implements the studyassist CLI: roster imports, syllabus
// analysis, plan generation, and backup synchronization for the local study
// store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/canvas"
	"github.com/DalPra0/MetodoCanvas/internal/config"
	"github.com/DalPra0/MetodoCanvas/internal/firestore"
	"github.com/DalPra0/MetodoCanvas/internal/gemini"
	"github.com/DalPra0/MetodoCanvas/internal/importer"
	"github.com/DalPra0/MetodoCanvas/internal/logging"
	"github.com/DalPra0/MetodoCanvas/internal/planner"
	"github.com/DalPra0/MetodoCanvas/internal/study"
	"github.com/DalPra0/MetodoCanvas/internal/syllabus"
)

var (
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "studyassist",
	Short: "Academic planning assistant",
	Long: `studyassist aggregates tasks and courses from Canvas, analyzes syllabus
PDFs with AI, generates weekly study plans, and keeps the local study store
synchronized with a remote backup.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(runCmd)
}

// app bundles the wired services a command needs.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	state    *study.State
	importer *importer.Importer
}

// newApp loads config and wires the local state and roster importer. The AI
// client, backup store, and pipeline are wired on demand by the commands
// that need their credentials.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	store, err := study.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	state := study.NewState(store, logger.Named("study"))

	roster := canvas.NewClient(canvas.Config{
		BaseURL: cfg.Canvas.BaseURL,
		Token:   cfg.Canvas.Token.Value(),
		Timeout: cfg.Canvas.Timeout.Duration(),
	}, logger.Named("canvas"))

	imp, err := importer.New(roster, importer.Config{
		Parallelism: cfg.Import.Parallelism,
	}, logger.Named("importer"))
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, state: state, importer: imp}, nil
}

func (a *app) geminiClient() (*gemini.Client, error) {
	return gemini.NewClient(gemini.Config{
		APIKey:  a.cfg.Gemini.APIKey.Value(),
		Model:   a.cfg.Gemini.Model,
		BaseURL: a.cfg.Gemini.BaseURL,
		Timeout: a.cfg.Gemini.Timeout.Duration(),
	}, a.logger.Named("gemini"))
}

func (a *app) syncer() (*study.Syncer, error) {
	backup, err := firestore.NewClient(firestore.Config{
		ProjectID: a.cfg.Firestore.ProjectID,
		APIKey:    a.cfg.Firestore.APIKey.Value(),
		BaseURL:   a.cfg.Firestore.BaseURL,
		Timeout:   a.cfg.Firestore.Timeout.Duration(),
	}, a.logger.Named("firestore"))
	if err != nil {
		return nil, err
	}
	return study.NewSyncer(backup, study.SyncConfig{
		Parallelism: a.cfg.Sync.Parallelism,
	}, a.logger.Named("sync"))
}

func (a *app) pipeline() (*syllabus.Pipeline, error) {
	ai, err := a.geminiClient()
	if err != nil {
		return nil, err
	}
	return syllabus.NewPipeline(syllabus.NewExtractor(a.logger.Named("pdf")), ai, a.logger.Named("syllabus"))
}

func (a *app) planner() (*planner.Planner, error) {
	ai, err := a.geminiClient()
	if err != nil {
		return nil, err
	}
	return planner.New(ai, a.logger.Named("planner"))
}
