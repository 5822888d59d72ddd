package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/color-game/palette/config"
	"github.com/color-game/palette/datastore"
	"github.com/color-game/palette/migrations"
	"github.com/color-game/palette/palette"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one palettectl invocation and releases its connections
func run(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) error {
	app := &application{config: cfg}
	defer app.close()

	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	app.reportMetrics(stderr)
	return err
}

// application holds what every subcommand shares for one invocation
type application struct {
	config   config.Config
	store    *palette.Store
	registry *prometheus.Registry
	closers  []io.Closer
}

// skipStore marks commands that never touch the palette store
const skipStore = "skip-store"

func newRootCmd(app *application) *cobra.Command {
	var threshold float64

	root := &cobra.Command{
		Use:          "palettectl",
		Short:        "palettectl - manage color palettes and their derived variations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipStore] == "true" || cmd.Name() == "help" {
				return nil
			}
			if cmd.Flags().Changed("threshold") {
				app.config.SimilarityThreshold = threshold
			}
			return app.open(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().Float64Var(&threshold, "threshold", app.config.SimilarityThreshold,
		"similarity threshold (0-50) for this invocation")

	root.AddCommand(newPaletteCmd(app))
	root.AddCommand(newColorCmd(app))
	root.AddCommand(newFlatCmd(app))
	root.AddCommand(newExportCmd(app))
	root.AddCommand(newImportCmd(app))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newThresholdCmd(app))

	return root
}

// open builds the configured blob store and loads the palette store from it
func (app *application) open(ctx context.Context, logOutput io.Writer) error {
	blobs, err := app.openBlobStore()
	if err != nil {
		return err
	}

	logger := log.New(logOutput, "", log.LstdFlags)
	opts := []palette.Option{
		palette.WithLogger(logger),
		palette.WithKey(app.config.PaletteKey),
		palette.WithThreshold(app.config.SimilarityThreshold),
	}
	if app.config.MetricsEnabled {
		app.registry = prometheus.NewRegistry()
		opts = append(opts, palette.WithMetrics(palette.NewMetrics(app.registry)))
	}

	store, err := palette.New(ctx, blobs, opts...)
	if err != nil {
		return err
	}
	app.store = store
	return nil
}

func (app *application) openBlobStore() (datastore.BlobStore, error) {
	cfg := app.config

	switch cfg.Store {
	case config.StoreMemory:
		return datastore.NewMemoryBlobStore(), nil

	case config.StoreFile:
		return datastore.NewFileBlobStore(cfg.PaletteDir)

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		app.closers = append(app.closers, client)
		return datastore.NewRedisBlobStore(client, datastore.WithPrefix(cfg.RedisPrefix)), nil

	case config.StorePostgres:
		connStr := datastore.BuildDBConnStr(
			cfg.DatabasePassword,
			cfg.DatabaseUser,
			cfg.DatabaseHost,
			cfg.DatabaseName,
			cfg.SSLMode,
		)
		dbConn, err := datastore.NewDB(cfg.DatabaseType, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.closers = append(app.closers, dbConn)

		if err := migrations.RunMigrations(dbConn); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return datastore.NewBlobDatabase(dbConn)
	}

	return nil, fmt.Errorf("unknown palette store %q", cfg.Store)
}

func (app *application) close() {
	for _, closer := range app.closers {
		if err := closer.Close(); err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}
	app.closers = nil
}

// reportMetrics prints the palette counters collected during this invocation
func (app *application) reportMetrics(w io.Writer) {
	if app.registry == nil {
		return
	}

	families, err := app.registry.Gather()
	if err != nil {
		log.Printf("Error gathering metrics: %v", err)
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
			}
			sort.Strings(labels)

			value := metric.GetCounter().GetValue()
			if metric.GetGauge() != nil {
				value = metric.GetGauge().GetValue()
			}
			fmt.Fprintf(w, "%s{%s} %g\n", family.GetName(), strings.Join(labels, ","), value)
		}
	}
}
