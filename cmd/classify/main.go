// classify reclasifica las presentaciones del catálogo fuera de línea.
//
// Uso:
//
//	go run ./cmd/classify [-only-missing] [-dry-run]
//	go run ./cmd/classify -name "Amoxicilina 500 mg x 50 cápsulas"
//
// Con -name solo imprime la clasificación del nombre dado; no necesita base de datos.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/kardex-farmacia/internal/application/presentation"
	domainpresentation "github.com/jhoicas/kardex-farmacia/internal/domain/presentation"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/kardex-farmacia/internal/infrastructure/redis"
	"github.com/jhoicas/kardex-farmacia/pkg/config"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

func main() {
	onlyMissing := flag.Bool("only-missing", false, "clasificar solo productos sin perfil")
	dryRun := flag.Bool("dry-run", false, "calcular sin guardar")
	name := flag.String("name", "", "clasificar un nombre y salir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *name != "" {
		p := domainpresentation.Classify(*name)
		log.Info().
			Str("name", *name).
			Str("normalized", domainpresentation.Normalize(*name)).
			Str("kind", string(p.Kind)).
			Int("units", p.UnitsPerPackage).
			Str("unit", p.UnitOfMeasure).
			Str("rule", p.Rule).
			Msg("clasificación")
		return
	}

	if cfg.Ledger.Storage != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.Ledger.Storage).Msg("la reclasificación batch requiere LEDGER_STORAGE=postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, cfg.DB, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	var lock presentation.JobLock = memory.NewJobLock()
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		lock = infraredis.NewJobLock(rdb, log)
	} else {
		log.Warn().Msg("sin Redis: el candado solo protege este proceso")
	}

	uc := presentation.NewUseCase(nil,
		postgres.NewProductRepository(pool),
		postgres.NewPresentationRepository(pool),
		lock, log)

	sum, err := uc.ReclassifyCatalog(ctx, *onlyMissing, *dryRun)
	if err != nil {
		log.Error().Err(err).Int("scanned", sum.Scanned).Int("classified", sum.Classified).Msg("reclasificación interrumpida")
		os.Exit(1)
	}
	ev := log.Info().
		Int("scanned", sum.Scanned).
		Int("classified", sum.Classified).
		Int("skipped", sum.Skipped).
		Bool("dry_run", sum.DryRun)
	for kind, n := range sum.ByKind {
		ev = ev.Int(string(kind), n)
	}
	ev.Msg("resumen")
}
