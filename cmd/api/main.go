package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mstanvir/garment-track-backend/internal/config"
	"github.com/mstanvir/garment-track-backend/internal/events"
	"github.com/mstanvir/garment-track-backend/internal/order"
	"github.com/mstanvir/garment-track-backend/internal/product"
	"github.com/mstanvir/garment-track-backend/internal/redisx"
	"github.com/mstanvir/garment-track-backend/internal/tracking"
	"github.com/mstanvir/garment-track-backend/internal/user"
	"github.com/mstanvir/garment-track-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.InitFromEnv()
	defer logger.Sync()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.L().Fatal("JWT_SECRET is not set")
	}

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	cache := redisx.New(cfg.RedisAddr)
	defer cache.Close()
	pub := events.NewPublisher(cfg.KafkaBrokers)
	defer pub.Close()

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.TokenTTL)

	productService := product.NewService(product.NewPostgresRepository(db), cache)
	productHandler := product.NewHandler(productService)

	orderService := order.NewService(order.NewPostgresRepository(db), pub, cache)
	orderHandler := order.NewHandler(orderService, productService)

	trackingService := tracking.NewService(tracking.NewPostgresRepository(db), orderService)
	trackingHandler := tracking.NewHandler(trackingService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger)

	// public surface: registration, login and the catalog
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	// everything past this point carries a bearer token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	trackingHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)

	logger.L().Infow("starting server", "addr", cfg.Addr, "env", cfg.AppEnv)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.L().Fatalw("server stopped", "error", err)
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	logger.L().Infow("request",
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		logger.L().Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		logger.L().Fatalw("open database", "error", err)
	}
	if err := db.Ping(); err != nil {
		logger.L().Fatalw("ping database", "error", err)
	}
	return db
}

// ensureSchema creates the tables on first run so a fresh postgres is
// usable without a migration step.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			name TEXT,
			role TEXT NOT NULL,
			status TEXT NOT NULL,
			suspension_reason TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price NUMERIC NOT NULL,
			available_quantity INT NOT NULL DEFAULT 0,
			minimum_order_quantity INT NOT NULL DEFAULT 1,
			payment_option TEXT NOT NULL,
			images TEXT[] NOT NULL DEFAULT '{}',
			demo_video TEXT,
			description TEXT,
			show_on_home BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			tracking_id TEXT UNIQUE NOT NULL,
			user_email TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			product_id INT NOT NULL,
			product_name TEXT NOT NULL,
			price NUMERIC NOT NULL,
			quantity INT NOT NULL,
			order_total NUMERIC NOT NULL,
			contact_number TEXT,
			delivery_address TEXT,
			notes TEXT,
			payment_status TEXT,
			status TEXT NOT NULL,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tracking_logs (
			log_id SERIAL PRIMARY KEY,
			tracking_id TEXT NOT NULL,
			status TEXT NOT NULL,
			location TEXT,
			note TEXT,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_email ON orders (user_email)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_logs_tracking_id ON tracking_logs (tracking_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			logger.L().Fatalw("schema setup failed", "error", err)
		}
	}
}
