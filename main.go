package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"flexknot/adapters/edges"
	"flexknot/adapters/memory"
	"flexknot/adapters/postgres"
	"flexknot/adapters/spline"
	"flexknot/app"
	"flexknot/domain/foreground"
	"flexknot/domain/likelihood"
	"flexknot/domain/proposal"
	"flexknot/internal/api"
	"flexknot/internal/config"
	"flexknot/internal/errors"
	"flexknot/internal/migration"
	"flexknot/ports"
)

// initDatabase connects to PostgreSQL and runs migrations
func initDatabase(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	// Load the observed spectrum
	readerConfig := edges.ReaderConfig{
		FreqColumn: appConfig.Data.FreqColumn,
		TempColumn: appConfig.Data.TempColumn,
		SkipHeader: appConfig.Data.SkipHeader,
		TrimHead:   appConfig.Data.TrimHead,
		TrimTail:   appConfig.Data.TrimTail,
	}
	spectrum, err := edges.NewReader(readerConfig).Read(appConfig.Data.File)
	if err != nil {
		log.Fatalf("Failed to load spectrum: %v", err)
	}

	// Build the likelihood engine
	fgModel, err := foreground.Lookup(appConfig.Engine.Foreground)
	if err != nil {
		log.Fatalf("Unknown foreground model: %v", err)
	}
	engineConfig := likelihood.Config{
		Order:      appConfig.Engine.Order,
		Foreground: fgModel,
		Sigma:      appConfig.Engine.Sigma,
		NewInterpolator: func() ports.InterpolatorPort {
			return spline.NewMonotone()
		},
	}
	engine, err := likelihood.NewEngine(spectrum, engineConfig)
	if err != nil {
		log.Fatalf("Failed to build likelihood engine: %v", err)
	}
	log.Printf("[Main] Engine ready: order %d, %s foreground, %d observations",
		appConfig.Engine.Order, fgModel.Name(), engine.Observations())

	// Proposal block for hosts sampling in the unit hypercube
	block, err := proposal.NewBlock(
		appConfig.Engine.Order,
		proposal.Prior{Min: -1, Max: 1},
		proposal.DefaultForegroundPriors(fgModel.Terms()),
		spectrum.FreqMin(), spectrum.FreqMax(),
	)
	if err != nil {
		log.Fatalf("Failed to build proposal block: %v", err)
	}

	// Wire the evaluation ledger: postgres when configured, memory otherwise
	var ledger ports.LedgerPort
	if appConfig.Ledger.DatabaseURL != "" {
		db, err := initDatabase(appConfig.Ledger.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		ledger = postgres.NewLedgerRepository(db)
		log.Println("[Main] Using PostgreSQL evaluation ledger")
	} else {
		ledger = memory.NewLedger(appConfig.Ledger.MemoryLimit)
		log.Printf("[Main] No DATABASE_URL set, using in-memory ledger (limit %d)", appConfig.Ledger.MemoryLimit)
	}

	deps := api.Deps{
		Evaluation: app.NewEvaluationService(engine, ledger),
		Sweep:      app.NewSweepService(engine, ledger, appConfig.Sweep.Workers),
		Report:     app.NewReportService(engine, spectrum, ledger),
		Engine:     engine,
		Spectrum:   spectrum,
		Block:      block,
	}
	router := api.NewRouter(deps)

	// Operational listener: metrics + pprof on a side port
	if appConfig.Debug.Enabled {
		go api.ServeDebug(appConfig.Debug.Port)
	}

	log.Printf("[Main] Starting flexknot server on port %s", appConfig.Server.Port)
	log.Fatal(router.Run(":" + appConfig.Server.Port))
}
