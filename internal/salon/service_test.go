package salon

import (
	"context"
	"errors"
	"testing"

	"github.com/flashrv/flashrv-api/internal/model"
)

// --- モック ---

type mockSalonRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Salon, error)
	listAllFn  func(ctx context.Context) ([]*model.Salon, error)
}

func (m *mockSalonRepo) FindByID(ctx context.Context, id string) (*model.Salon, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockSalonRepo) ListAll(ctx context.Context) ([]*model.Salon, error) {
	return m.listAllFn(ctx)
}
func (m *mockSalonRepo) Count(ctx context.Context) (int, error)           { return 0, nil }
func (m *mockSalonRepo) Create(ctx context.Context, s *model.Salon) error { return nil }

type mockServiceRepo struct {
	listBySalonIDFn func(ctx context.Context, salonID string) ([]*model.ServiceItem, error)
}

func (m *mockServiceRepo) FindByID(ctx context.Context, id string) (*model.ServiceItem, error) {
	return nil, nil
}
func (m *mockServiceRepo) ListBySalonID(ctx context.Context, salonID string) ([]*model.ServiceItem, error) {
	return m.listBySalonIDFn(ctx, salonID)
}
func (m *mockServiceRepo) Create(ctx context.Context, s *model.ServiceItem) error { return nil }

// --- テスト ---

// TestService_GetSalon_NotFound は存在しないサロンIDがNotFoundエラーに
// なることを検証する。
func TestService_GetSalon_NotFound(t *testing.T) {
	salons := &mockSalonRepo{findByIDFn: func(ctx context.Context, id string) (*model.Salon, error) {
		return nil, nil
	}}
	svc := NewService(salons, nil)

	_, err := svc.GetSalon(context.Background(), "missing")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeSalonNotFound {
		t.Errorf("GetSalon() error = %v, want SALON_NOT_FOUND", err)
	}
}

// TestService_GetSalon_Success はサロン取得の正常系を検証する。
func TestService_GetSalon_Success(t *testing.T) {
	want := &model.Salon{ID: "salon-1", Name: "Keur Coiff Premium", Address: "Almadies, Dakar", Rating: 4.7}
	salons := &mockSalonRepo{findByIDFn: func(ctx context.Context, id string) (*model.Salon, error) {
		return want, nil
	}}
	svc := NewService(salons, nil)

	got, err := svc.GetSalon(context.Background(), "salon-1")
	if err != nil {
		t.Fatalf("GetSalon() error = %v", err)
	}
	if got.Name != want.Name {
		t.Errorf("Name = %q, want %q", got.Name, want.Name)
	}
}

// TestService_ListServices_UnknownSalon は存在しないサロンIDに対して
// エラーではなく空の一覧が返ることを検証する。
func TestService_ListServices_UnknownSalon(t *testing.T) {
	services := &mockServiceRepo{listBySalonIDFn: func(ctx context.Context, salonID string) ([]*model.ServiceItem, error) {
		return nil, nil
	}}
	svc := NewService(nil, services)

	got, err := svc.ListServices(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ListServices() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("services = %d, want 0", len(got))
	}
}

// TestService_ListSalons_PropagatesStorageError はストレージ障害が
// そのまま伝播することを検証する。
func TestService_ListSalons_PropagatesStorageError(t *testing.T) {
	salons := &mockSalonRepo{listAllFn: func(ctx context.Context) ([]*model.Salon, error) {
		return nil, errors.New("storage failure")
	}}
	svc := NewService(salons, nil)

	if _, err := svc.ListSalons(context.Background()); err == nil {
		t.Error("ListSalons() error = nil, want storage error")
	}
}
