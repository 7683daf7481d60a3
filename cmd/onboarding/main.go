// cmd/onboarding/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"automata-onboarding/internal/common/config"
	"automata-onboarding/internal/common/database"
	"automata-onboarding/internal/common/logger"
	"automata-onboarding/internal/common/observability"
	"automata-onboarding/internal/engine"
	"automata-onboarding/internal/models"
	"automata-onboarding/internal/onboarding"
	"automata-onboarding/internal/storage"
	"automata-onboarding/pkg/catalog"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if cfg.Logging.Level != "" {
		zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		log = logger.NewZapAdapter(zapLog)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
		zapLog.Info("metrics listener started", zap.String("address", cfg.Metrics.Address))
	}

	ctx := context.Background()

	cat, err := loadCatalog(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	kv := buildKV(ctx, cfg, zapLog)

	store := onboarding.NewStore(kv,
		onboarding.WithKey(cfg.Onboarding.StorageKey),
		onboarding.WithExpiryDays(cfg.Onboarding.ExpiryDays),
		onboarding.WithMaxSelections(cfg.Onboarding.MaxSelections),
		onboarding.WithLogger(log),
	)

	eng := engine.New(cat, engine.WithLogger(log))

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "recommend":
		recommendCmd := flag.NewFlagSet("recommend", flag.ExitOnError)
		industry := recommendCmd.String("industry", "", "Override the detected industry (e.g., food)")
		save := recommendCmd.Bool("save", false, "Persist prompt and results to the onboarding record")
		recommendCmd.Parse(os.Args[2:])

		prompt := ""
		if recommendCmd.NArg() > 0 {
			prompt = recommendCmd.Arg(0)
		}

		var bctx *models.BusinessContext
		if *industry != "" {
			bctx = &models.BusinessContext{Industry: *industry}
		}

		start := time.Now()
		recs := eng.GetRecommendations(prompt, bctx)
		obs.RecordRecommendation(ctx, string(eng.DetectIndustry(prompt)), time.Since(start))

		if *save {
			if _, err := store.Save(ctx, onboarding.Update{
				BusinessPrompt:  &prompt,
				Recommendations: recs,
			}); err != nil {
				zapLog.Fatal("failed to save onboarding record", zap.Error(err))
			}
		}

		printJSON(recs)

	case "defaults":
		if len(os.Args) < 3 {
			fmt.Println("Error: industry is required, e.g., defaults food")
			os.Exit(1)
		}
		printJSON(eng.IndustryDefaults(models.Industry(os.Args[2])))

	case "select":
		if len(os.Args) < 3 {
			fmt.Println("Error: template id is required, e.g., select birthday-rewards")
			os.Exit(1)
		}
		id := os.Args[2]
		selected, err := store.ToggleTemplate(ctx, id)
		if err != nil {
			zapLog.Fatal("selection failed", zap.Error(err))
		}
		obs.RecordSelection(ctx, selected)
		if selected {
			fmt.Printf("Selected %s (%d of %d slots used)\n", id, store.SelectionCount(ctx), onboarding.MaxSelections)
		} else if store.CanAddMore(ctx) {
			fmt.Printf("Deselected %s\n", id)
		} else {
			fmt.Printf("Cannot select %s: all %d selection slots are used\n", id, onboarding.MaxSelections)
		}

	case "status":
		data, err := store.Get(ctx)
		if err != nil {
			zapLog.Fatal("status read failed", zap.Error(err))
		}
		if data == nil {
			fmt.Println("No onboarding in progress.")
			return
		}
		fmt.Printf("In progress: %v\n", store.IsInProgress(ctx))
		fmt.Printf("Complete:    %v\n", store.IsComplete(ctx))
		fmt.Printf("Selections:  %d of %d\n", data.SelectionCount(), onboarding.MaxSelections)
		fmt.Printf("Expires in:  %d day(s)\n", store.DaysUntilExpiry(ctx))
		printJSON(data)

	case "process":
		if len(os.Args) < 3 {
			fmt.Println("Error: organization id is required, e.g., process 7f3c...")
			os.Exit(1)
		}
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			zapLog.Fatal("postgres connection failed", zap.Error(err))
		}
		defer pg.Close()

		processor := onboarding.NewProcessor(pg.GetDB(), store, cat, log)
		result, err := processor.Process(ctx, os.Args[2])
		if err != nil {
			zapLog.Fatal("processing failed", zap.Error(err))
		}
		fmt.Printf("Created project %s with %d automation(s)\n", result.Project.ID, len(result.Automations))
		printJSON(result)

	case "clear":
		if err := store.Clear(ctx); err != nil {
			zapLog.Fatal("clear failed", zap.Error(err))
		}
		fmt.Println("Onboarding record cleared.")

	case "help":
		fallthrough
	default:
		help()
	}
}

// loadCatalog reads the configured catalog document, or falls back to the
// built-in library when no path is configured.
func loadCatalog(cfg *config.Config, zapLog *zap.Logger) (catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	zapLog.Info("catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("templates", len(cat)))
	return cat, nil
}

// buildKV connects the Redis state backend, falling back to an in-process
// store when Redis is unconfigured or unreachable.
func buildKV(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) storage.KV {
	if cfg.Database.Redis.Address == "" {
		return storage.NewMemoryKV()
	}

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err = rdb.Ping(pingCtx); err == nil {
			zapLog.Info("Redis connected", zap.String("address", cfg.Database.Redis.Address))
			return storage.NewRedisKV(rdb.GetClient())
		}
	}

	zapLog.Warn("Redis unavailable, using in-memory state store", zap.Error(err))
	return storage.NewMemoryKV()
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func help() {
	fmt.Println(`Usage: onboarding <command> [arguments]

Commands:
  recommend [flags] "<prompt>"   Rank templates for a business description
      -industry <tag>            Override the detected industry
      -save                      Persist prompt and results
  defaults <industry>            Show the default templates for an industry
  select <template-id>           Toggle a template selection
  status                         Show the current onboarding record
  process <organization-id>      Materialize the record into a project
  clear                          Delete the onboarding record
  help                           Show this help`)
}
