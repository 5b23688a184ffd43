package main

import (
	"context"
	"fmt"
	"os"

	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/accounting"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/config"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/database"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/render"
	"github.com/DeagsB/IONEX-Time-Tracking-sub003/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("", "", "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var markers database.MarkerStore = db.Markers()
	if cfg.HasRemoteMarkers() {
		remote, err := database.OpenRemoteMarkerStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to remote marker store: %w", err)
		}
		defer remote.Close()
		markers = database.NewUnionMarkerStore(db.Markers(), remote)
	}

	renderer := render.NewPDFRenderer(cfg.InvoiceDir)
	invoicer := accounting.NewFileInvoicer(cfg.InvoiceDir)
	billingService := service.NewBillingService(db, markers, renderer, invoicer)

	rootCmd := newRootCmd(billingService, cfg)
	return rootCmd.ExecuteContext(context.Background())
}
