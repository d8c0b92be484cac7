package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flashrv/flashrv-api/internal/model"
)

// SalonServiceInterface はサロンハンドラーが必要とするサービスインターフェース。
type SalonServiceInterface interface {
	// ListSalons は全サロンの一覧を返す。
	ListSalons(ctx context.Context) ([]*model.Salon, error)
	// GetSalon は指定IDのサロンを取得する。
	GetSalon(ctx context.Context, id string) (*model.Salon, error)
	// ListServices は指定サロンの施術メニュー一覧を返す。
	ListServices(ctx context.Context, salonID string) ([]*model.ServiceItem, error)
}

// SalonHandler はサロンカタログのHTTPハンドラー。全ルート公開。
type SalonHandler struct {
	service SalonServiceInterface
}

// NewSalonHandler はSalonHandlerを生成する。
func NewSalonHandler(service SalonServiceInterface) *SalonHandler {
	return &SalonHandler{service: service}
}

// salonResponse はサロン情報のAPIレスポンス。
type salonResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
}

// serviceResponse は施術メニュー情報のAPIレスポンス。
type serviceResponse struct {
	ID              string `json:"id"`
	SalonID         string `json:"salonId"`
	Name            string `json:"name"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ListSalons はサロン一覧を返す。
// GET /api/salons
func (h *SalonHandler) ListSalons(w http.ResponseWriter, r *http.Request) {
	salons, err := h.service.ListSalons(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]salonResponse, 0, len(salons))
	for _, s := range salons {
		out = append(out, toSalonResponse(s))
	}

	writeSuccess(w, http.StatusOK, out)
}

// GetSalon はサロン詳細を返す。
// GET /api/salons/{id}
func (h *SalonHandler) GetSalon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	salon, err := h.service.GetSalon(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, toSalonResponse(salon))
}

// ListServices はサロンの施術メニュー一覧を返す。
// 存在しないサロンIDに対しては空リストを返す。
// GET /api/salons/{id}/services
func (h *SalonHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	salonID := chi.URLParam(r, "id")

	services, err := h.service.ListServices(r.Context(), salonID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceResponse{
			ID:              svc.ID,
			SalonID:         svc.SalonID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	writeSuccess(w, http.StatusOK, out)
}

// toSalonResponse はmodel.SalonからAPIレスポンスに変換する。
func toSalonResponse(s *model.Salon) salonResponse {
	return salonResponse{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		Rating:  s.Rating,
	}
}
