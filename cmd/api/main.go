package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	drive "google.golang.org/api/drive/v3"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/xyzlearns/ShopEase1/internal/auth"
	"github.com/xyzlearns/ShopEase1/internal/backup"
	"github.com/xyzlearns/ShopEase1/internal/checkout"
	"github.com/xyzlearns/ShopEase1/internal/config"
	"github.com/xyzlearns/ShopEase1/internal/database"
	"github.com/xyzlearns/ShopEase1/internal/email"
	"github.com/xyzlearns/ShopEase1/internal/events"
	"github.com/xyzlearns/ShopEase1/internal/gcreds"
	"github.com/xyzlearns/ShopEase1/internal/handlers"
	"github.com/xyzlearns/ShopEase1/internal/logger"
	"github.com/xyzlearns/ShopEase1/internal/payment"
	"github.com/xyzlearns/ShopEase1/internal/routes"
	"github.com/xyzlearns/ShopEase1/internal/sheets"
	"github.com/xyzlearns/ShopEase1/internal/store"
	"github.com/xyzlearns/ShopEase1/internal/store/memory"
	"github.com/xyzlearns/ShopEase1/internal/store/mysql"
)

// devJWTSecret signs tokens outside production when JWT_SECRET is unset.
const devJWTSecret = "shopease-dev-secret"

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 1. --- Storage ---
	st, err := openStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.Close()

	if err := st.SeedProducts(ctx, store.DefaultCatalog()); err != nil {
		zlog.Fatal("Failed to seed catalog", zap.Error(err))
	}

	// 2. --- Identity ---
	secret := cfg.JWTSecret
	if secret == "" {
		zlog.Warn("JWT_SECRET not set, using the development secret")
		secret = devJWTSecret
	}
	authService := auth.NewService(st, auth.NewTokenManager(secret, cfg.JWTTTL))

	// 3. --- Checkout and Integrations ---
	proofs, err := backup.NewLocalStore(cfg.UploadDir, cfg.BaseURL, zlog)
	if err != nil {
		zlog.Fatal("Failed to prepare upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}
	checkoutService := checkout.NewService(st, st, proofs, zlog)

	creds := gcreds.Credentials{
		File:        cfg.GoogleCredentialsFile,
		ClientEmail: cfg.GoogleClientEmail,
		PrivateKey:  cfg.GooglePrivateKey,
	}
	if mirror := openMirror(ctx, cfg, creds, zlog); mirror != nil {
		checkoutService.SetMirror(mirror)
	}

	if cfg.SheetID != "" {
		if appender, err := openSheets(ctx, cfg, creds, zlog); err != nil {
			zlog.Warn("Spreadsheet mirror disabled", zap.Error(err))
		} else {
			checkoutService.AddNotifier(appender)
		}
	}

	if brokers := cfg.Brokers(); len(brokers) > 0 {
		producer := events.NewProducer(brokers, cfg.KafkaTopic, zlog)
		defer producer.Close()
		checkoutService.AddNotifier(producer)
		zlog.Info("Order events enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}

	if cfg.OrderReceipts {
		checkoutService.AddNotifier(email.NewReceipts(email.LogSender{Logger: zlog}, cfg.UPIPayee))
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Store:       st,
		StoreDriver: cfg.StoreDriver,
		Auth:        authService,
		Checkout:    checkoutService,
		UPI:         payment.UPI{VPA: cfg.UPIVPA, Payee: cfg.UPIPayee},
		Logger:      zlog,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		CORSOrigins:       cfg.Origins(),
		UploadDir:         proofs.Dir(),
		AdminAPIKey:       cfg.AdminAPIKey,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		AuthRateBurst:     cfg.AuthRateBurst,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("Starting ShopEase API server",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.AppEnv),
			zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
	zlog.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (store.Store, error) {
	if cfg.StoreDriver != "mysql" {
		zlog.Info("Using in-memory store")
		return memory.New(), nil
	}

	pool := database.DefaultPool
	pool.MaxOpenConns = cfg.DBMaxOpenConns
	pool.MaxIdleConns = cfg.DBMaxOpenConns
	db, err := database.OpenDBWithDSN(ctx, cfg.DBDSN, pool, zlog)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return mysql.New(db), nil
}

// openMirror returns nil when mirroring is off or cannot be set up; the
// local copy is enough to take orders.
func openMirror(ctx context.Context, cfg *config.Config, creds gcreds.Credentials, zlog *zap.Logger) checkout.ProofMirror {
	switch cfg.ProofMirror {
	case "drive":
		opts, err := creds.ClientOptions(drive.DriveFileScope)
		if err != nil {
			zlog.Warn("Drive mirror disabled", zap.Error(err))
			return nil
		}
		m, err := backup.NewDriveMirror(ctx, cfg.DriveFolderID, opts...)
		if err != nil {
			zlog.Warn("Drive mirror disabled", zap.Error(err))
			return nil
		}
		zlog.Info("Proof mirror enabled", zap.String("mirror", "drive"), zap.String("folder", cfg.DriveFolderID))
		return m
	case "cloudinary":
		m, err := backup.NewCloudinaryMirror(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			zlog.Warn("Cloudinary mirror disabled", zap.Error(err))
			return nil
		}
		zlog.Info("Proof mirror enabled", zap.String("mirror", "cloudinary"), zap.String("folder", cfg.CloudinaryFolder))
		return m
	default:
		return nil
	}
}

func openSheets(ctx context.Context, cfg *config.Config, creds gcreds.Credentials, zlog *zap.Logger) (*sheets.Appender, error) {
	opts, err := creds.ClientOptions(gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	client, err := sheets.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	zlog.Info("Spreadsheet mirror enabled", zap.String("default_tab", cfg.SheetsDefaultTab))
	return sheets.NewAppender(client, cfg.SheetID, cfg.SheetsDefaultTab, zlog), nil
}
