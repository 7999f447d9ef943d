package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"gemura/internal/domain/auth"
	"gemura/internal/domain/customer"
	"gemura/internal/domain/inventory"
	"gemura/internal/domain/ledger"
	"gemura/internal/domain/payroll"
	"gemura/internal/domain/person"
	"gemura/internal/domain/reports"
	"gemura/internal/platform/config"
	"gemura/internal/platform/db"
	authhandler "gemura/internal/transport/http/handlers/auth"
	customershandler "gemura/internal/transport/http/handlers/customers"
	inventoryhandler "gemura/internal/transport/http/handlers/inventory"
	payrollhandler "gemura/internal/transport/http/handlers/payroll"
	peoplehandler "gemura/internal/transport/http/handlers/people"
	reportshandler "gemura/internal/transport/http/handlers/reports"
	"gemura/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New wires stores, services and routes. Without DATABASE_URL everything
// runs on in-memory stores, which is how the test suite and local demos
// use it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		connected, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		pool = connected

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, "migrations"); err != nil {
				return nil, err
			}
		}
	} else {
		log.Println("DATABASE_URL not set, running with in-memory stores")
	}

	var (
		authStore      auth.StoreAPI
		personStore    person.StoreAPI
		ledgerStore    ledger.StoreAPI
		payrollStore   payroll.StoreAPI
		inventoryStore inventory.StoreAPI
		customerStore  customer.StoreAPI
	)
	if pool != nil {
		authStore = auth.NewStore(pool)
		personStore = person.NewStore(pool)
		ledgerStore = ledger.NewStore(pool)
		payrollStore = payroll.NewStore(pool)
		inventoryStore = inventory.NewStore(pool)
		customerStore = customer.NewStore(pool)
	} else {
		authStore = auth.NewMemoryStore()
		personStore = person.NewMemoryStore()
		ledgerStore = ledger.NewMemoryStore()
		payrollStore = payroll.NewMemoryStore()
		inventoryStore = inventory.NewMemoryStore()
		customerStore = customer.NewMemoryStore()
	}

	authService := auth.NewService(authStore, cfg.JWTSecret)
	personService := person.NewService(personStore)
	ledgerService := ledger.NewService(ledgerStore)
	payrollService := payroll.NewService(payrollStore, ledgerService, personService)
	inventoryService := inventory.NewService(inventoryStore)
	customerService := customer.NewService(customerStore)
	reportsService := reports.NewService(payrollService, inventoryService, customerService)

	if cfg.RunSeed {
		if pool != nil {
			if err := db.Seed(ctx, pool, cfg); err != nil {
				return nil, err
			}
		} else if cfg.SeedAdminEmail != "" && cfg.SeedAdminPass != "" {
			if _, err := authService.Register(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPass, auth.RoleAdmin); err != nil {
				return nil, err
			}
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService, cfg.AllowSelfSignup).RegisterRoutes(r)
		peoplehandler.NewHandler(personService).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, ledgerService, personService).RegisterRoutes(r)
		inventoryhandler.NewHandler(inventoryService).RegisterRoutes(r)
		customershandler.NewHandler(customerService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func Run() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	log.Printf("gemura server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
