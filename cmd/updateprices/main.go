package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/finbook/finbook_app/internal/backends"
	"github.com/finbook/finbook_app/internal/platform/config"
	"github.com/finbook/finbook_app/internal/repositories/database/pgsql"
	"github.com/finbook/finbook_app/pkg/database"
)

// updateprices pulls fresh rates through every ingestion backend. One
// backend failing does not stop the others; the exit code reflects whether
// any backend failed.
func main() {
	period := flag.String("period", "7d", "Time period for updating prices (e.g., 7d, 30d, 1y). Default is 7d.")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	client := &http.Client{Timeout: cfg.PriceFetchTimeout}

	runner := backends.NewRunner(repos.PriceRepo, os.Stdout,
		backends.NewYahooBackend(repos.CommodityRepo, repos.PriceRepo, cfg.BaseCurrencyCode, client),
		backends.NewWebsiteBackend(repos.CommodityRepo, repos.PriceRepo, cfg.BaseCurrencyCode, client),
	)

	if failed := runner.Run(ctx, *period); failed > 0 {
		os.Exit(1)
	}
}
