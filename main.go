package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-lab/config"
	adminModels "github.com/c14220110/poliklinik-lab/internal/administrasi/models"
	adminServices "github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	"github.com/c14220110/poliklinik-lab/internal/common/memstore"
	"github.com/c14220110/poliklinik-lab/internal/common/middlewares"
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/internal/common/repository"
	"github.com/c14220110/poliklinik-lab/internal/common/session"
	dokterModels "github.com/c14220110/poliklinik-lab/internal/dokter/models"
	dokterServices "github.com/c14220110/poliklinik-lab/internal/dokter/services"
	"github.com/c14220110/poliklinik-lab/internal/routes"
	"github.com/c14220110/poliklinik-lab/pkg/logger"
	"github.com/c14220110/poliklinik-lab/pkg/storage/mariadb"
	redisstore "github.com/c14220110/poliklinik-lab/pkg/storage/redis"
	"github.com/c14220110/poliklinik-lab/pkg/utils"
	"github.com/c14220110/poliklinik-lab/ws"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poliklinik-lab",
		Short: "Lab order invoice dan resep dokter untuk poliklinik",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Menjalankan HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			memory, _ := cmd.Flags().GetBool("memory")
			return runServer(memory)
		},
	}
	cmd.Flags().Bool("memory", false, "Pakai penyimpanan in-memory berisi data contoh (tanpa MariaDB)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Membuat tabel MariaDB yang dibutuhkan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger.Init("poliklinik-lab", cfg.AppEnv, cfg.LogLevel)

			ctx := context.Background()
			db, err := mariadb.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := mariadb.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			log.Info().Msg("migration completed")
			return nil
		},
	}
}

// stores mengumpulkan implementasi repository yang dipakai service.
type stores struct {
	catalog       adminServices.TestCatalog
	prescriptions interface {
		adminServices.PrescriptionCollection
		dokterServices.SubmissionHandler
	}
	invoices  adminServices.InvoiceStore
	settings  adminServices.SettingsStore
	patients  dokterServices.PatientSource
	templates dokterServices.TemplateSource
	health    func(ctx context.Context) error
	close     func()
}

func memoryStores(cfg *config.Config) stores {
	store := memstore.NewDemo(cm.GlobalSettings{LabName: cfg.DefaultLabName, LabLogo: cfg.DefaultLabLogo})
	log.Warn().Msg("using in-memory storage, data is lost on restart")
	return stores{
		catalog:       store,
		prescriptions: store,
		invoices:      store,
		settings:      store,
		patients:      store,
		templates:     store,
		close:         func() {},
	}
}

func mariadbStores(ctx context.Context, cfg *config.Config) (stores, error) {
	db, err := mariadb.Connect(ctx, cfg)
	if err != nil {
		return stores{}, err
	}
	return stores{
		catalog:       repository.NewCatalogRepository(db),
		prescriptions: repository.NewPrescriptionRepository(db),
		invoices:      repository.NewInvoiceRepository(db),
		settings: repository.NewSettingsRepository(db, cm.GlobalSettings{
			LabName: cfg.DefaultLabName,
			LabLogo: cfg.DefaultLabLogo,
		}),
		patients:  repository.NewPatientRepository(db),
		templates: repository.NewTemplateRepository(db),
		health:    db.PingContext,
		close:     func() { closeDB(db) },
	}, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}

func runServer(memory bool) error {
	cfg := config.LoadConfig()
	logger.Init("poliklinik-lab", cfg.AppEnv, cfg.LogLevel)
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		st  stores
		err error
	)
	if memory {
		st = memoryStores(cfg)
	} else if st, err = mariadbStores(ctx, cfg); err != nil {
		return err
	}
	defer st.close()

	labSessions := session.Store[adminModels.LabOrderState](session.NewMemoryStore[adminModels.LabOrderState](cfg.SessionTTL))
	resepSessions := session.Store[dokterModels.ComposerState](session.NewMemoryStore[dokterModels.ComposerState](cfg.SessionTTL))
	catalog := st.catalog

	if cfg.RedisEnabled() {
		rdb, err := redisstore.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()

		labSessions = session.NewRedisStore[adminModels.LabOrderState](rdb, "session:lab_order", cfg.SessionTTL)
		resepSessions = session.NewRedisStore[dokterModels.ComposerState](rdb, "session:prescription", cfg.SessionTTL)
		if cfg.CatalogCacheTTL > 0 {
			catalog = repository.NewCachedCatalog(st.catalog, rdb, cfg.CatalogCacheTTL)
		}
		st.health = withRedis(st.health, rdb)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	ids := utils.NewIDSource(time.Now)
	billing := adminServices.NewBillingService(adminServices.BillingDeps{
		Catalog:       catalog,
		Prescriptions: st.prescriptions,
		Invoices:      st.invoices,
		Settings:      st.settings,
		Events:        hub,
		IDs:           ids,
		Sessions:      labSessions,
	})
	resep := dokterServices.NewResepService(dokterServices.ResepDeps{
		IDs:       ids,
		Handler:   st.prescriptions,
		Patients:  st.patients,
		Templates: st.templates,
		Events:    hub,
		Sessions:  resepSessions,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middlewares.RequestLogger())

	routes.Init(e, routes.Deps{
		JWTSecret: []byte(cfg.JWTSecret),
		Billing:   billing,
		Settings:  adminServices.NewSettingsService(catalog, st.settings),
		Pasien:    adminServices.NewPasienService(st.patients),
		Resep:     resep,
		Hub:       hub,
		Health:    st.health,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server berjalan")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func withRedis(next func(ctx context.Context) error, rdb *goredis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if next != nil {
			if err := next(ctx); err != nil {
				return err
			}
		}
		return rdb.Ping(ctx).Err()
	}
}
