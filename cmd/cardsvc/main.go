package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/cardcraft-services/configs"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/broker"
	cardcfg "github.com/avvvet/cardcraft-services/internal/cardsvc/config"
	pg "github.com/avvvet/cardcraft-services/internal/cardsvc/db"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/handlers"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/store"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/store/memstore"
	"github.com/avvvet/cardcraft-services/internal/db"
	"github.com/avvvet/cardcraft-services/internal/nats"
)

const SERVICE_NAME = "card"

func init() {
	instanceId := "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	config.CreateUniqueInstance(SERVICE_NAME)
	cfg := cardcfg.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}

	ctx := context.Background()

	var (
		users     service.UserStore
		templates service.TemplateStore
		contacts  service.ContactStore
		orders    service.OrderStore
	)

	// MongoDB holds users, templates and contact messages
	if cfg.MongoURI != "" {
		mdb, err := db.ConnectToDB(cfg.MongoURI)
		if err != nil {
			log.Fatalf("Error: unable to connect to MongoDB %v", err)
		}
		defer mdb.Client().Disconnect(ctx)

		if err := db.EnsureIndexes(ctx, mdb); err != nil {
			log.Fatalf("Error: unable to create indexes %v", err)
		}
		users = store.NewUserStore(mdb)
		templates = store.NewTemplateStore(mdb)
		contacts = store.NewContactStore(mdb)
		log.Infof("MongoDB connection established successfully")
	} else {
		log.Warn("MONGODB_URI not set, keeping users, templates and contacts in memory")
		users = memstore.NewUserStore()
		templates = memstore.NewTemplateStore()
		contacts = memstore.NewContactStore()
	}

	// Postgres holds orders
	if cfg.PostgresURL != "" {
		pool, err := pg.Connect(cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Error: unable to connect to Postgres %v", err)
		}
		defer pg.ClosePool()

		if err := pg.Migrate(ctx, pool); err != nil {
			log.Fatalf("Error: %v", err)
		}
		orders = store.NewOrderStore(pool)
		log.Infof("Postgres connection established successfully")
	} else {
		log.Warn("POSTGRES_URL not set, keeping orders in memory")
		orders = memstore.NewOrderStore()
	}

	// NATS is optional; without it contact mail and catalog pushes are skipped
	var events service.Publisher
	n, err := nats.Connect(SERVICE_NAME + "-" + config.GetInstanceId())
	if err != nil {
		log.Warnf("NATS unavailable, events disabled: %v", err)
	} else {
		defer n.Conn.Close()
		events = broker.NewBroker(n.Conn)
		log.Printf("NATS connection established successfully %s", n.Url)
	}

	uploader, err := service.NewS3Uploader(ctx, service.S3Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Error: unable to configure object storage %v", err)
	}

	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Error: unable to create Gemini client %v", err)
		}
		generator = g
	} else {
		log.Warn("GEMINI_API_KEY not set, design generation returns sample designs")
	}

	templateSvc := service.NewTemplateService(templates, events)
	orderSvc := service.NewOrderService(orders, templates)

	h := handlers.NewHandler(handlers.Services{
		Auth:      service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Templates: templateSvc,
		Catalog:   service.NewCatalogService(templateSvc.Managed, cfg.CatalogPageSize),
		Contacts:  service.NewContactService(contacts, events),
		Uploads:   service.NewUploadService(uploader),
		Designs:   service.NewDesignService(generator),
		Render:    service.NewRenderService(templates, orderSvc, service.NewChromeExporter(cfg.ChromePath, cfg.ExportTimeout)),
		Orders:    orderSvc,
	})

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Initialize routes
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
