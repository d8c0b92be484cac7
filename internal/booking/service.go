// Package booking は予約作成・参照のドメインロジックを提供する。
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashrv/flashrv-api/internal/model"
	"github.com/flashrv/flashrv-api/internal/repository"
)

// Record は予約のレスポンス射影。
// サロン名・施術メニュー名を含み、永続化エンティティをそのまま外に出さない。
type Record struct {
	ID          string
	SalonName   string
	ServiceName string
	Datetime    time.Time
	Status      string
	Total       int
}

// Config は予約ワークフローの設定。
type Config struct {
	// EnforceServiceSalonMatch が真の場合、指定された施術メニューが
	// 指定されたサロンに属することを検証する。
	EnforceServiceSalonMatch bool
}

// MetricsRecorder は予約作成数の記録インターフェース。
type MetricsRecorder interface {
	RecordBookingCreated()
}

// Service は予約ワークフローのサービス層。
type Service struct {
	bookings repository.BookingRepository
	salons   repository.SalonRepository
	services repository.ServiceRepository
	config   Config
	metrics  MetricsRecorder
}

// NewService はServiceを生成する。metricsはnil可。
func NewService(
	bookings repository.BookingRepository,
	salons repository.SalonRepository,
	services repository.ServiceRepository,
	config Config,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		bookings: bookings,
		salons:   salons,
		services: services,
		config:   config,
		metrics:  metrics,
	}
}

// Create は予約を作成する。
//
// サロン解決 → 施術メニュー解決 → 永続化の順で厳密に逐次実行し、
// どこかで失敗した場合は何も永続化しない。予約のtotalには作成時点の
// 施術メニュー価格をコピーするため、以後の価格変更は既存予約に影響しない。
func (s *Service) Create(ctx context.Context, externalSubjectID, salonID, serviceID string, datetime time.Time) (*Record, error) {
	salon, err := s.salons.FindByID(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("予約対象サロンの解決に失敗しました: %w", err)
	}
	if salon == nil {
		return nil, model.NewSalonNotFoundError(salonID)
	}

	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("予約対象施術メニューの解決に失敗しました: %w", err)
	}
	if svc == nil {
		return nil, model.NewServiceNotFoundError(serviceID)
	}

	if s.config.EnforceServiceSalonMatch && svc.SalonID != salon.ID {
		return nil, model.NewServiceMismatchError(serviceID, salonID)
	}

	b := &model.Booking{
		ID:                uuid.New().String(),
		ExternalSubjectID: externalSubjectID,
		SalonID:           salon.ID,
		ServiceID:         svc.ID,
		Datetime:          datetime,
		Status:            model.BookingStatusPending,
		Total:             svc.Price,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("予約の永続化に失敗しました: %w", err)
	}

	slog.Info("booking created",
		slog.String("booking_id", b.ID),
		slog.String("subject", externalSubjectID),
		slog.String("salon_id", salon.ID),
		slog.String("service_id", svc.ID),
		slog.Int("total", b.Total),
	)
	if s.metrics != nil {
		s.metrics.RecordBookingCreated()
	}

	return &Record{
		ID:          b.ID,
		SalonName:   salon.Name,
		ServiceName: svc.Name,
		Datetime:    b.Datetime,
		Status:      string(b.Status),
		Total:       b.Total,
	}, nil
}

// ListMine は指定subjectの予約一覧をdatetime降順で返す。
// ページネーションおよび状態によるフィルタリングは行わない。
func (s *Service) ListMine(ctx context.Context, externalSubjectID string) ([]Record, error) {
	rows, err := s.bookings.ListBySubject(ctx, externalSubjectID)
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗しました: %w", err)
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			ID:          row.ID,
			SalonName:   row.SalonName,
			ServiceName: row.ServiceName,
			Datetime:    row.Datetime,
			Status:      string(row.Status),
			Total:       row.Total,
		}
	}
	return records, nil
}
