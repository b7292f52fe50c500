package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-retail-inventory/internal/config"
	"go-retail-inventory/internal/handler"
	"go-retail-inventory/internal/middleware"
	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/repository"
	"go-retail-inventory/internal/service"
	"go-retail-inventory/internal/ws"
	"go-retail-inventory/pkg/database"
	"go-retail-inventory/pkg/mailer"

	"github.com/gofiber/contrib/websocket"
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
	cfg := config.Load()

	// 2. Setup Database
	db := database.Connect(cfg.DatabaseDSN)
	if err := db.AutoMigrate(
		&model.Branch{},
		&model.Product{},
		&model.Stock{},
		&model.Sale{},
		&model.User{},
		&model.Session{},
	); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Mail delivery for password resets
	var mail mailer.Sender
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		mail = mailer.LogSender{}
	}

	// 5. Dependency Injection (Wiring Layers)
	branchRepo := repository.NewBranchRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	catalogService := service.NewCatalogService(branchRepo, productRepo, stockRepo, db, wsHub)
	invService := service.NewInventoryService(branchRepo, productRepo, stockRepo, saleRepo, db, wsHub)
	authService := service.NewAuthService(userRepo, sessionRepo, mail, cfg.SecretKey, cfg.ResetBaseURL)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	invHandler := handler.NewInventoryHandler(invService)
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail Inventory Tracker v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/check-auth", authHandler.CheckAuth)

	accounts := api.Group("/accounts")
	accounts.Post("/signup", accountHandler.Signup)
	accounts.Post("/password-reset", accountHandler.PasswordReset)
	accounts.Post("/password-reset-confirm", accountHandler.PasswordResetConfirm)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))

	// Products
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/add-product", catalogHandler.CreateProduct)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Branches
	protected.Get("/branches", catalogHandler.GetBranches)
	protected.Post("/add-branch", catalogHandler.CreateBranch)
	protected.Get("/branches/:id", catalogHandler.GetBranch)
	protected.Put("/branches/:id", catalogHandler.UpdateBranch)
	protected.Delete("/branches/:id", catalogHandler.DeleteBranch)

	// Stock
	protected.Get("/stock", invHandler.GetStocks)
	protected.Post("/add-stock", invHandler.AddStock)
	protected.Get("/stock/:id", invHandler.GetStock)
	protected.Put("/stock/:id", invHandler.UpdateStock)
	protected.Delete("/stock/:id", invHandler.DeleteStock)

	// Sales
	protected.Get("/sales", invHandler.GetSales)
	protected.Post("/add-sale", invHandler.AddSale)
	protected.Delete("/sales/:id", invHandler.DeleteSale)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// SPA host: built frontend bundle for every non-API path
	app.Static("/", cfg.StaticDir)
	app.Get("/*", func(c *fiber.Ctx) error {
		index := filepath.Join(cfg.StaticDir, "index.html")
		if err := c.SendFile(index); err != nil {
			return c.Status(404).SendString("frontend bundle not found")
		}
		return nil
	})

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
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
