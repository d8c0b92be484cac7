package handler

import (
	"log/slog"
	"net/http"

	"github.com/flashrv/flashrv-api/internal/middleware"
	"github.com/flashrv/flashrv-api/internal/policy"
	"github.com/flashrv/flashrv-api/internal/token"
	"github.com/go-chi/chi/v5"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	Policy            *policy.Policy
	Verifier          token.Verifier
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	Metrics           middleware.HTTPMetricsRecorder
	AuthMetrics       middleware.AuthMetricsRecorder
	MetricsHandler    http.Handler

	// サービス
	SalonService   SalonServiceInterface
	ProfileService ProfileServiceInterface
	BookingService BookingServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Metrics → Auth(Policy) → RateLimit(General)
//
// 認証ポリシーはパスごとに公開/要認証を判定するため、全ルートが同一チェーンを通る。
// 公開ルートはAuthミドルウェアと一般レート制限をサブジェクトなしで素通りする。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewAuthMiddleware(deps.Policy, deps.Verifier, deps.AuthMetrics))
	r.Use(deps.RateLimiter.GeneralMiddleware())

	healthHandler := NewHealthHandler()
	salonHandler := NewSalonHandler(deps.SalonService)
	profileHandler := NewProfileHandler(deps.ProfileService)
	bookingHandler := NewBookingHandler(deps.BookingService, deps.ProfileService)

	// Prometheusスクレイプ用エンドポイント（ポリシー上は公開）
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// --- 公開ルート ---
		r.Get("/health", healthHandler.Health)

		r.Route("/salons", func(r chi.Router) {
			r.Get("/", salonHandler.ListSalons)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", salonHandler.GetSalon)
				r.Get("/services", salonHandler.ListServices)
			})
		})

		// --- 要認証ルート ---
		r.Get("/me", profileHandler.Me)

		r.Route("/bookings", func(r chi.Router) {
			// POST /api/bookings - 予約作成（作成専用レート制限を追加）
			r.With(deps.RateLimiter.BookingCreationMiddleware()).Post("/", bookingHandler.Create)

			r.Get("/me", bookingHandler.ListMine)
		})
	})

	return r
}
