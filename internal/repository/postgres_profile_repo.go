package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flashrv/flashrv-api/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したユーザープロフィールリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// GetOrCreate は指定subjectのプロフィールを取得し、存在しなければ作成して返す。
//
// read-then-writeの競合を避けるため、external_subject_idの一意制約を前提に
// INSERT ... ON CONFLICT DO NOTHING を先に実行し、その後のSELECTで
// 確定した行を読む。同一subjectへのN並行呼び出しでも行は必ず1つであり、
// 全呼び出しが同じ行を返す。
func (r *PostgresProfileRepo) GetOrCreate(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (id, external_subject_id, role, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (external_subject_id) DO NOTHING`,
		profile.ID, profile.ExternalSubjectID, profile.Role, profile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの作成に失敗しました: %w", err)
	}

	stored := &model.UserProfile{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, external_subject_id, role, created_at
		 FROM user_profiles WHERE external_subject_id = $1`,
		profile.ExternalSubjectID,
	).Scan(&stored.ID, &stored.ExternalSubjectID, &stored.Role, &stored.CreatedAt)

	if err == sql.ErrNoRows {
		// INSERT直後の行が消えるのは同時削除のみで、本コアに削除操作はない
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: 行が存在しません")
	}
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}

	return stored, nil
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
