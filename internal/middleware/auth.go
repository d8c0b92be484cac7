// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flashrv/flashrv-api/internal/policy"
	"github.com/flashrv/flashrv-api/internal/token"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// subjectContextKey はリクエストコンテキストに外部subject IDを格納するためのキー。
var subjectContextKey = contextKey("subject")

// authoritiesContextKey はリクエストコンテキストに権限集合を格納するためのキー。
var authoritiesContextKey = contextKey("authorities")

// AuthMetricsRecorder はトークン検証失敗数の記録インターフェース。
type AuthMetricsRecorder interface {
	RecordAuthFailure()
}

// NewAuthMiddleware はアクセスポリシーに基づく認証ミドルウェアを返す。
//
// リクエストごとにポリシーを1回だけ評価し、公開ルートはそのまま通す。
// 認証必須ルートではAuthorizationヘッダーのベアラートークンを検証し、
// 無効な場合はビジネスロジックに到達する前に401エンベロープで拒否する。
// 検証成功時はsubjectと導出済み権限集合をリクエストコンテキストに注入する。
// metricsはnil可。
func NewAuthMiddleware(pol *policy.Policy, verifier token.Verifier, metrics AuthMetricsRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pol.Evaluate(r.Method, r.URL.Path) == policy.RequirePublic {
				next.ServeHTTP(w, r)
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				if metrics != nil {
					metrics.RecordAuthFailure()
				}
				writeUnauthorized(w)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				slog.Warn("token verification failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				if metrics != nil {
					metrics.RecordAuthFailure()
				}
				writeUnauthorized(w)
				return
			}

			// 空の権限集合は「追加権限なし（最小権限）」であり、認証自体は成立する
			authorities := token.DeriveAuthorities(*claims)

			ctx := context.WithValue(r.Context(), subjectContextKey, claims.Subject)
			ctx = context.WithValue(ctx, authoritiesContextKey, authorities)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken はAuthorizationヘッダーからベアラートークンを取り出す。
// ヘッダーが存在しないか形式が異なる場合は空文字を返す。
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}

// writeUnauthorized は401の統一エンベロープを書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "authentification requise",
		"data":    nil,
	})
}

// SubjectFromContext はリクエストコンテキストから外部subject IDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func SubjectFromContext(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("subject not found in context")
	}
	return subject, nil
}

// AuthoritiesFromContext はリクエストコンテキストから権限集合を取得する。
// 未認証リクエストでは空の集合を返す。
func AuthoritiesFromContext(ctx context.Context) token.Authorities {
	authorities, ok := ctx.Value(authoritiesContextKey).(token.Authorities)
	if !ok {
		return nil
	}
	return authorities
}

// ContextWithSubject はコンテキストにsubjectと権限集合を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithSubject(ctx context.Context, subject string, authorities token.Authorities) context.Context {
	ctx = context.WithValue(ctx, subjectContextKey, subject)
	if authorities != nil {
		ctx = context.WithValue(ctx, authoritiesContextKey, authorities)
	}
	return ctx
}
