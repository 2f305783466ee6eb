package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"remoteselect/internal/itemsource"
)

type serveOptions struct {
	addr  string
	match string
	db    string
	delay time.Duration
	limit int
	size  int
	seed  int64
}

// NewServeCommand returns the command running the demo item source. It is
// registered on the root command and is also the itemserver binary.
func NewServeCommand() *cobra.Command {
	return newServeCommand()
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo item source",
		Long: `Serve a catalog of {id, text} records over HTTP for the select control.

ENDPOINTS:
  GET /items?q=TEXT   Records whose text matches TEXT, at most --limit
  GET /healthz        Health check

Matching is a case-insensitive substring test, or fuzzy with --match fuzzy.
With --db the catalog lives in a SQLite file, seeded on first use.

Examples:
  remoteselect serve
  remoteselect serve --addr :8080 --match fuzzy
  remoteselect serve --db items.db --delay 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", itemsource.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&opts.match, "match", string(itemsource.MatchSubstring), "Match mode: substring or fuzzy")
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite catalog file")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Artificial latency per request")
	cmd.Flags().IntVar(&opts.limit, "limit", itemsource.DefaultCatalogSize, "Maximum records per response")
	cmd.Flags().IntVar(&opts.size, "size", itemsource.DefaultCatalogSize, "Catalog size")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "Catalog seed")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode, err := itemsource.ParseMatchMode(opts.match)
	if err != nil {
		return err
	}

	catalog := itemsource.GenerateCatalog(itemsource.DefaultWords, opts.size, opts.seed)

	var store itemsource.Store
	if opts.db != "" {
		db, err := itemsource.OpenSQLite(opts.db, mode)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer db.Close()

		n, err := db.SeedIfEmpty(ctx, catalog)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if n > 0 {
			log.Printf("Item source: seeded %d records into %s", n, opts.db)
		}
		store = db
	} else {
		store = itemsource.NewMemoryStore(catalog, mode)
	}

	srv := itemsource.NewServer(store,
		itemsource.WithLimit(opts.limit),
		itemsource.WithDelay(opts.delay),
	)
	fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s items on http://%s/items\n", mode, opts.addr)
	return srv.Serve(ctx, opts.addr)
}
