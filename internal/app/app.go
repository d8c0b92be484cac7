package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/flashrv/flashrv-api/internal/booking"
	"github.com/flashrv/flashrv-api/internal/config"
	"github.com/flashrv/flashrv-api/internal/database"
	"github.com/flashrv/flashrv-api/internal/handler"
	"github.com/flashrv/flashrv-api/internal/logger"
	"github.com/flashrv/flashrv-api/internal/metrics"
	"github.com/flashrv/flashrv-api/internal/middleware"
	"github.com/flashrv/flashrv-api/internal/policy"
	"github.com/flashrv/flashrv-api/internal/profile"
	"github.com/flashrv/flashrv-api/internal/repository"
	"github.com/flashrv/flashrv-api/internal/salon"
	"github.com/flashrv/flashrv-api/internal/token"
)

// Init はアプリケーションの初期化を行う。
// .envファイル（存在する場合）と環境変数からConfigを読み込み、
// JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. .envファイルがあれば読み込む（なければ環境変数のみ）
	if err := godotenv.Load(); err == nil {
		slog.Info(".env file loaded")
	}

	// 3. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(cfg)
	default:
		return runServe(cfg)
	}
}

// newVerifier は設定に応じたトークン検証器を生成する。
// RS256公開鍵が設定されていればそちらを優先し、なければHS256共有シークレットを使う。
func newVerifier(cfg *config.Config) (token.Verifier, error) {
	if cfg.IDPPublicKey != "" {
		verifier, err := token.NewRS256Verifier([]byte(cfg.IDPPublicKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse IDP public key: %w", err)
		}
		return verifier, nil
	}
	return token.NewHS256Verifier(cfg.IDPHMACSecret), nil
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	salonRepo := repository.NewPostgresSalonRepo(db)
	serviceRepo := repository.NewPostgresServiceRepo(db)
	profileRepo := repository.NewPostgresProfileRepo(db)
	bookingRepo := repository.NewPostgresBookingRepo(db)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	salonService := salon.NewService(salonRepo, serviceRepo)
	profileService := profile.NewService(profileRepo, collector)
	bookingService := booking.NewService(
		bookingRepo, salonRepo, serviceRepo,
		booking.Config{EnforceServiceSalonMatch: cfg.EnforceServiceSalonMatch},
		collector,
	)

	// 5. トークン検証器の初期化
	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	// 6. レート制限の初期化（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.RateLimitGeneral) / 60.0),
		GeneralBurst:    cfg.RateLimitGeneral,
		BookingRate:     rate.Limit(float64(cfg.RateLimitBooking) / 60.0),
		BookingBurst:    cfg.RateLimitBooking,
		CleanupInterval: 5 * time.Minute,
	})
	defer rateLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		Policy:            policy.Default(),
		Verifier:          verifier,
		RateLimiter:       rateLimiter,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Metrics:           collector,
		AuthMetrics:       collector,
		MetricsHandler:    metrics.Handler(registry),

		SalonService:   salonService,
		ProfileService: profileService,
		BookingService: bookingService,
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runSeed はカタログの初期データを投入する。
// 既にサロンが存在する場合は何もしない（冪等）。
func runSeed(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	salonRepo := repository.NewPostgresSalonRepo(db)
	serviceRepo := repository.NewPostgresServiceRepo(db)

	if err := database.Seed(context.Background(), salonRepo, serviceRepo); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /api/health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/api/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
