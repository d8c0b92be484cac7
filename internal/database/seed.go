package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashrv/flashrv-api/internal/model"
	"github.com/flashrv/flashrv-api/internal/repository"
)

// Seed は初期データ（サロンと施術メニュー）を投入する。
// サロンが1件でも存在する場合は何もしない（冪等）。
func Seed(ctx context.Context, salons repository.SalonRepository, services repository.ServiceRepository) error {
	count, err := salons.Count(ctx)
	if err != nil {
		return fmt.Errorf("サロン数の取得に失敗: %w", err)
	}
	if count > 0 {
		slog.Info("seed skipped, salons already exist", slog.Int("count", count))
		return nil
	}

	now := time.Now().UTC()

	s1 := &model.Salon{ID: uuid.New().String(), Name: "Salon Awa Beauty", Address: "Plateau, Dakar", Rating: 4.8, CreatedAt: now}
	s2 := &model.Salon{ID: uuid.New().String(), Name: "Chez Ibra - Coiffeur Homme", Address: "Ouakam, Dakar", Rating: 4.9, CreatedAt: now}
	s3 := &model.Salon{ID: uuid.New().String(), Name: "Keur Coiff Premium", Address: "Almadies, Dakar", Rating: 4.7, CreatedAt: now}

	for _, s := range []*model.Salon{s1, s2, s3} {
		if err := salons.Create(ctx, s); err != nil {
			return fmt.Errorf("サロンの作成に失敗: %w", err)
		}
	}

	items := []*model.ServiceItem{
		{ID: uuid.New().String(), SalonID: s1.ID, Name: "Tresses", Price: 8000, DurationMinutes: 90, CreatedAt: now},
		{ID: uuid.New().String(), SalonID: s1.ID, Name: "Nattes", Price: 6000, DurationMinutes: 60, CreatedAt: now},
		{ID: uuid.New().String(), SalonID: s2.ID, Name: "Coupe", Price: 2500, DurationMinutes: 25, CreatedAt: now},
		{ID: uuid.New().String(), SalonID: s3.ID, Name: "Brushing", Price: 5000, DurationMinutes: 45, CreatedAt: now},
	}

	for _, item := range items {
		if err := services.Create(ctx, item); err != nil {
			return fmt.Errorf("施術メニューの作成に失敗: %w", err)
		}
	}

	slog.Info("seed completed",
		slog.Int("salons", 3),
		slog.Int("services", len(items)),
	)

	return nil
}
