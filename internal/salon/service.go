// Package salon はサロン・施術メニューの参照系ドメインロジックを提供する。
// サロンと施術メニューはシード・管理プロセスが作成し、本コアからは読み取り専用。
package salon

import (
	"context"
	"fmt"

	"github.com/flashrv/flashrv-api/internal/model"
	"github.com/flashrv/flashrv-api/internal/repository"
)

// Service はサロン参照のサービス層。
type Service struct {
	salons   repository.SalonRepository
	services repository.ServiceRepository
}

// NewService はServiceを生成する。
func NewService(salons repository.SalonRepository, services repository.ServiceRepository) *Service {
	return &Service{salons: salons, services: services}
}

// ListSalons は全サロンの一覧を返す。
func (s *Service) ListSalons(ctx context.Context) ([]*model.Salon, error) {
	salons, err := s.salons.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("サロン一覧の取得に失敗しました: %w", err)
	}
	return salons, nil
}

// GetSalon は指定IDのサロンを返す。存在しない場合はNotFoundエラーを返す。
func (s *Service) GetSalon(ctx context.Context, id string) (*model.Salon, error) {
	salon, err := s.salons.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("サロンの取得に失敗しました: %w", err)
	}
	if salon == nil {
		return nil, model.NewSalonNotFoundError(id)
	}
	return salon, nil
}

// ListServices は指定サロンの施術メニュー一覧を返す。
// サロンの存在チェックは行わず、存在しないサロンIDには空の一覧を返す。
func (s *Service) ListServices(ctx context.Context, salonID string) ([]*model.ServiceItem, error) {
	services, err := s.services.ListBySalonID(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("施術メニュー一覧の取得に失敗しました: %w", err)
	}
	return services, nil
}
