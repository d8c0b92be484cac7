package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flashrv/flashrv-api/internal/model"
)

// PostgresBookingRepo はPostgreSQLを使用した予約リポジトリ。
type PostgresBookingRepo struct {
	db *sql.DB
}

// NewPostgresBookingRepo はPostgresBookingRepoを生成する。
func NewPostgresBookingRepo(db *sql.DB) *PostgresBookingRepo {
	return &PostgresBookingRepo{db: db}
}

// Create は予約を作成する。
// totalは呼び出し側で施術メニュー価格からコピー済みの値をそのまま保存する。
func (r *PostgresBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (id, external_subject_id, salon_id, service_id, datetime, status, total, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.ExternalSubjectID, b.SalonID, b.ServiceID, b.Datetime, b.Status, b.Total, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("予約の作成に失敗しました: %w", err)
	}
	return nil
}

// ListBySubject は指定subjectの予約一覧をサロン名・施術メニュー名付きで
// datetime降順で返す。ページネーションは行わない。
func (r *PostgresBookingRepo) ListBySubject(ctx context.Context, externalSubjectID string) ([]BookingWithNames, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			b.id, b.external_subject_id, b.salon_id, b.service_id, b.datetime, b.status, b.total, b.created_at,
			s.name, sv.name
		 FROM bookings b
		 JOIN salons s ON b.salon_id = s.id
		 JOIN services sv ON b.service_id = sv.id
		 WHERE b.external_subject_id = $1
		 ORDER BY b.datetime DESC`,
		externalSubjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var results []BookingWithNames
	for rows.Next() {
		var row BookingWithNames
		if err := rows.Scan(
			&row.ID, &row.ExternalSubjectID, &row.SalonID, &row.ServiceID,
			&row.Datetime, &row.Status, &row.Total, &row.CreatedAt,
			&row.SalonName, &row.ServiceName,
		); err != nil {
			return nil, fmt.Errorf("予約行の読み取りに失敗しました: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("予約一覧の走査に失敗しました: %w", err)
	}
	return results, nil
}

// compile-time interface check
var _ BookingRepository = (*PostgresBookingRepo)(nil)
