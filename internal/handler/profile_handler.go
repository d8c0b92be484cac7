package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/flashrv/flashrv-api/internal/middleware"
	"github.com/flashrv/flashrv-api/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// GetOrCreate は指定subjectのプロフィールを取得し、存在しなければ作成して返す。
	GetOrCreate(ctx context.Context, externalSubjectID string) (*model.UserProfile, error)
}

// ProfileHandler はプロフィールディレクトリのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// meResponse は自分のプロフィールのAPIレスポンス。
type meResponse struct {
	ID                string    `json:"id"`
	ExternalSubjectID string    `json:"externalSubjectId"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Me は認証済みユーザーのプロフィールを返す。初回アクセス時は遅延作成する。
// GET /api/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.SubjectFromContext(r.Context())
	if err != nil {
		writeFail(w, http.StatusUnauthorized, "authentification requise")
		return
	}

	p, err := h.service.GetOrCreate(r.Context(), subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, meResponse{
		ID:                p.ID,
		ExternalSubjectID: p.ExternalSubjectID,
		Role:              string(p.Role),
		CreatedAt:         p.CreatedAt,
	})
}
