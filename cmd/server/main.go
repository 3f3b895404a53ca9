package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nazdrin/inventory-sub001/internal/event"
	"github.com/nazdrin/inventory-sub001/internal/handler"
	"github.com/nazdrin/inventory-sub001/internal/middleware"
	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/notify"
	"github.com/nazdrin/inventory-sub001/internal/repository"
	"github.com/nazdrin/inventory-sub001/internal/service"
	"github.com/nazdrin/inventory-sub001/internal/source"
	"github.com/nazdrin/inventory-sub001/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.EnterpriseSettings{}, &model.BranchMapping{}, &model.CatalogRecord{}, &model.StockRecord{})

	// 3. Failure event bus + observers
	bus := event.NewBus()
	go bus.Run()

	notifier := notify.NewTelegramNotifier()
	go notifier.Listen(bus.Subscribe())

	// 4. Dependency Injection (Wiring Layers)
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

	pipeline := service.NewPipeline(enterpriseRepo, store, rules, adapters, bus)

	ingestHandler := handler.NewIngestHandler(pipeline, enterpriseRepo, catalogRepo, stockRepo)

	// 5. Schedulers, one per record kind
	ping := func() error { return database.Ping(db) }
	go service.NewScheduler(model.KindCatalog, enterpriseRepo, pipeline, ping).Run()
	go service.NewScheduler(model.KindStock, enterpriseRepo, pipeline, ping).Run()

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Feed Service v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "degraded", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", middleware.RequireServiceToken())
	api.Get("/enterprises", ingestHandler.GetEnterprises)
	api.Get("/enterprises/:enterprise/summary", ingestHandler.GetEnterpriseSummary)
	api.Post("/run/:enterprise/:kind", ingestHandler.RunPipeline)

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
