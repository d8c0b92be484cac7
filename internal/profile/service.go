// Package profile は外部IdPのsubjectとローカルプロフィールの対応付けを提供する。
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flashrv/flashrv-api/internal/model"
	"github.com/flashrv/flashrv-api/internal/repository"
)

// DefaultRole は新規プロフィールに割り当てるロール。
// 昇格は外部（管理）操作でのみ行われるため、本コアはこの値以外を割り当てない。
const DefaultRole = model.RoleClient

// MetricsRecorder はプロフィール作成数の記録インターフェース。
type MetricsRecorder interface {
	RecordProfileCreated()
}

// Service はプロフィールディレクトリのサービス層。
// 初回の認証済みリクエストでプロフィールを遅延作成する。
type Service struct {
	repo    repository.ProfileRepository
	metrics MetricsRecorder
}

// NewService はServiceを生成する。metricsはnil可。
func NewService(repo repository.ProfileRepository, metrics MetricsRecorder) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// GetOrCreate は指定subjectのプロフィールを取得し、存在しなければ
// デフォルトロールと現在時刻で作成して返す。
// 一意性の保証はリポジトリ側の一意制約に依存する。
func (s *Service) GetOrCreate(ctx context.Context, externalSubjectID string) (*model.UserProfile, error) {
	if externalSubjectID == "" {
		return nil, fmt.Errorf("external subject ID is required")
	}

	candidate := &model.UserProfile{
		ID:                uuid.New().String(),
		ExternalSubjectID: externalSubjectID,
		Role:              DefaultRole,
		CreatedAt:         time.Now().UTC(),
	}

	stored, err := s.repo.GetOrCreate(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}

	// 返却IDが候補IDと一致する場合のみ今回のINSERTが採用されている
	if stored.ID == candidate.ID {
		slog.Info("profile created",
			slog.String("profile_id", stored.ID),
			slog.String("subject", externalSubjectID),
		)
		if s.metrics != nil {
			s.metrics.RecordProfileCreated()
		}
	}

	return stored, nil
}
