package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flashrv/flashrv-api/internal/model"
)

// PostgresSalonRepo はPostgreSQLを使用したサロンリポジトリ。
type PostgresSalonRepo struct {
	db *sql.DB
}

// NewPostgresSalonRepo はPostgresSalonRepoを生成する。
func NewPostgresSalonRepo(db *sql.DB) *PostgresSalonRepo {
	return &PostgresSalonRepo{db: db}
}

// FindByID は指定IDのサロンを取得する。見つからない場合はnilを返す。
func (r *PostgresSalonRepo) FindByID(ctx context.Context, id string) (*model.Salon, error) {
	salon := &model.Salon{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, rating, created_at
		 FROM salons WHERE id = $1`,
		id,
	).Scan(&salon.ID, &salon.Name, &salon.Address, &salon.Rating, &salon.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("サロンの取得に失敗しました: %w", err)
	}

	return salon, nil
}

// ListAll は全サロンを名前昇順で返す。
func (r *PostgresSalonRepo) ListAll(ctx context.Context) ([]*model.Salon, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, rating, created_at
		 FROM salons ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("サロン一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var salons []*model.Salon
	for rows.Next() {
		salon := &model.Salon{}
		if err := rows.Scan(&salon.ID, &salon.Name, &salon.Address, &salon.Rating, &salon.CreatedAt); err != nil {
			return nil, fmt.Errorf("サロン行の読み取りに失敗しました: %w", err)
		}
		salons = append(salons, salon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("サロン一覧の走査に失敗しました: %w", err)
	}
	return salons, nil
}

// Count はサロンの総数を返す。
func (r *PostgresSalonRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM salons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("サロン数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// Create はサロンを作成する。シード専用。
func (r *PostgresSalonRepo) Create(ctx context.Context, salon *model.Salon) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO salons (id, name, address, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		salon.ID, salon.Name, salon.Address, salon.Rating, salon.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("サロンの作成に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SalonRepository = (*PostgresSalonRepo)(nil)
