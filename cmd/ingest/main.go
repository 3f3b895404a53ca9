package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nazdrin/inventory-sub001/internal/event"
	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/notify"
	"github.com/nazdrin/inventory-sub001/internal/repository"
	"github.com/nazdrin/inventory-sub001/internal/service"
	"github.com/nazdrin/inventory-sub001/internal/source"
	"github.com/nazdrin/inventory-sub001/pkg/database"

	"github.com/joho/godotenv"
)

const usage = `Usage: ingest run <enterprise_code> <catalog|stock> [--path <local-file>]`

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	args := os.Args[1:]
	if len(args) < 3 || args[0] != "run" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	enterpriseCode := args[1]
	kind := model.RecordKind(args[2])
	if !kind.Valid() {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	flags := flag.NewFlagSet("run", flag.ExitOnError)
	path := flags.String("path", "", "read the feed from a local file instead of the configured source")
	flags.Parse(args[3:])

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Wiring. One-shot runs notify synchronously instead of going through
	// the event bus, so delivery completes before the process exits.
	notifier := notify.NewTelegramNotifier()

	enterpriseRepo := repository.NewEnterpriseRepo(db)
	branchRepo := repository.NewBranchMappingRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	stockRepo := repository.NewStockRepo(db)
	store := repository.NewIngestStore(db, enterpriseRepo, catalogRepo, stockRepo)

	rules := service.NewRuleEngine(branchRepo, service.NewOrdersCorrector())

	dropDir := os.Getenv("FTP_DROP_DIR")
	if dropDir == "" {
		dropDir = "/var/ftp/uploads"
	}
	httpAdapter := source.NewHTTPFeedAdapter()
	adapters := map[string]source.Adapter{
		model.FormatJSONFeed:   httpAdapter,
		model.FormatXMLFeed:    httpAdapter,
		model.FormatExcelDrive: httpAdapter,
		model.FormatCSVFTP:     source.NewDropDirAdapter(dropDir, ".csv"),
		model.FormatRESTAPI:    source.NewRESTPagedAdapter(os.Getenv("REST_API_ENDPOINT"), branchRepo),
	}

	pipeline := service.NewPipeline(enterpriseRepo, store, rules, adapters, nil)

	// 4. Run
	var override source.Adapter
	if *path != "" {
		override = &source.LocalFileAdapter{Path: *path}
	}

	if err := pipeline.RunWithAdapter(enterpriseCode, kind, override); err != nil {
		var pErr *service.PipelineError
		if errors.As(err, &pErr) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", pErr.Kind, pErr.Err)
			notifier.Notify(event.Failure{
				Enterprise: enterpriseCode,
				Kind:       string(kind),
				ErrorKind:  string(pErr.Kind),
				Detail:     pErr.Err.Error(),
				At:         time.Now().UTC(),
			})
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	fmt.Printf("%s ingestion completed for enterprise %s\n", kind, enterpriseCode)
}
