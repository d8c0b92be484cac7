package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flashrv/flashrv-api/internal/model"
)

// PostgresServiceRepo はPostgreSQLを使用した施術メニューリポジトリ。
type PostgresServiceRepo struct {
	db *sql.DB
}

// NewPostgresServiceRepo はPostgresServiceRepoを生成する。
func NewPostgresServiceRepo(db *sql.DB) *PostgresServiceRepo {
	return &PostgresServiceRepo{db: db}
}

// FindByID は指定IDの施術メニューを取得する。見つからない場合はnilを返す。
func (r *PostgresServiceRepo) FindByID(ctx context.Context, id string) (*model.ServiceItem, error) {
	svc := &model.ServiceItem{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, salon_id, name, price, duration_minutes, created_at
		 FROM services WHERE id = $1`,
		id,
	).Scan(&svc.ID, &svc.SalonID, &svc.Name, &svc.Price, &svc.DurationMinutes, &svc.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("施術メニューの取得に失敗しました: %w", err)
	}

	return svc, nil
}

// ListBySalonID は指定サロンの施術メニュー一覧を名前昇順で返す。
func (r *PostgresServiceRepo) ListBySalonID(ctx context.Context, salonID string) ([]*model.ServiceItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, salon_id, name, price, duration_minutes, created_at
		 FROM services WHERE salon_id = $1 ORDER BY name ASC`,
		salonID,
	)
	if err != nil {
		return nil, fmt.Errorf("施術メニュー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var services []*model.ServiceItem
	for rows.Next() {
		svc := &model.ServiceItem{}
		if err := rows.Scan(&svc.ID, &svc.SalonID, &svc.Name, &svc.Price, &svc.DurationMinutes, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("施術メニュー行の読み取りに失敗しました: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("施術メニュー一覧の走査に失敗しました: %w", err)
	}
	return services, nil
}

// Create は施術メニューを作成する。シード専用。
func (r *PostgresServiceRepo) Create(ctx context.Context, svc *model.ServiceItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO services (id, salon_id, name, price, duration_minutes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		svc.ID, svc.SalonID, svc.Name, svc.Price, svc.DurationMinutes, svc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("施術メニューの作成に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ServiceRepository = (*PostgresServiceRepo)(nil)
