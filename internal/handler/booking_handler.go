package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/flashrv/flashrv-api/internal/booking"
	"github.com/flashrv/flashrv-api/internal/middleware"
	"github.com/flashrv/flashrv-api/internal/model"
)

// BookingServiceInterface は予約ハンドラーが必要とするサービスインターフェース。
type BookingServiceInterface interface {
	// Create は予約を作成する。
	Create(ctx context.Context, externalSubjectID, salonID, serviceID string, datetime time.Time) (*booking.Record, error)
	// ListMine は指定subjectの予約一覧を返す。
	ListMine(ctx context.Context, externalSubjectID string) ([]booking.Record, error)
}

// BookingHandler は予約ワークフローのHTTPハンドラー。
// 認証済みリクエストの処理前にプロフィールの遅延作成を行う。
type BookingHandler struct {
	service  BookingServiceInterface
	profiles ProfileServiceInterface
}

// NewBookingHandler はBookingHandlerを生成する。
func NewBookingHandler(service BookingServiceInterface, profiles ProfileServiceInterface) *BookingHandler {
	return &BookingHandler{
		service:  service,
		profiles: profiles,
	}
}

// createBookingRequest は予約作成リクエストのボディ。
type createBookingRequest struct {
	SalonID   string     `json:"salonId"`
	ServiceID string     `json:"serviceId"`
	Datetime  *time.Time `json:"datetime"`
}

// bookingResponse は予約情報のAPIレスポンス。
type bookingResponse struct {
	ID          string    `json:"id"`
	SalonName   string    `json:"salonName"`
	ServiceName string    `json:"serviceName"`
	Datetime    time.Time `json:"datetime"`
	Status      string    `json:"status"`
	Total       int       `json:"total"`
}

// validate は予約作成リクエストを検証する。
// 最初に失敗したフィールドのエラーのみを返す。
func (req *createBookingRequest) validate() *model.APIError {
	if req.SalonID == "" {
		return model.NewValidationError("salonId", "must not be blank")
	}
	if req.ServiceID == "" {
		return model.NewValidationError("serviceId", "must not be blank")
	}
	if req.Datetime == nil {
		return model.NewValidationError("datetime", "must not be null")
	}
	return nil
}

// Create は予約を作成する。
// POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.SubjectFromContext(r.Context())
	if err != nil {
		writeFail(w, http.StatusUnauthorized, "authentification requise")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}

	if apiErr := req.validate(); apiErr != nil {
		writeFail(w, http.StatusBadRequest, apiErr.Message)
		return
	}

	// ビジネスロジックの前にプロフィールを遅延作成する
	if _, err := h.profiles.GetOrCreate(r.Context(), subject); err != nil {
		handleServiceError(w, err)
		return
	}

	rec, err := h.service.Create(r.Context(), subject, req.SalonID, req.ServiceID, *req.Datetime)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toBookingResponse(rec))
}

// ListMine は認証済みユーザーの予約一覧を返す。
// GET /api/bookings/me
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.SubjectFromContext(r.Context())
	if err != nil {
		writeFail(w, http.StatusUnauthorized, "authentification requise")
		return
	}

	if _, err := h.profiles.GetOrCreate(r.Context(), subject); err != nil {
		handleServiceError(w, err)
		return
	}

	records, err := h.service.ListMine(r.Context(), subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]bookingResponse, 0, len(records))
	for i := range records {
		out = append(out, toBookingResponse(&records[i]))
	}

	writeSuccess(w, http.StatusOK, out)
}

// toBookingResponse はbooking.RecordからAPIレスポンスに変換する。
func toBookingResponse(rec *booking.Record) bookingResponse {
	return bookingResponse{
		ID:          rec.ID,
		SalonName:   rec.SalonName,
		ServiceName: rec.ServiceName,
		Datetime:    rec.Datetime,
		Status:      rec.Status,
		Total:       rec.Total,
	}
}
