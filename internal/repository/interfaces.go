// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/flashrv/flashrv-api/internal/model"
)

// SalonRepository はサロンデータの永続化インターフェース。
// サロンはシード・管理プロセスが作成し、本コアからは読み取り専用。
type SalonRepository interface {
	// FindByID は指定IDのサロンを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Salon, error)

	// ListAll は全サロンを名前昇順で返す。
	ListAll(ctx context.Context) ([]*model.Salon, error)

	// Count はサロンの総数を返す。シードの冪等判定に使用する。
	Count(ctx context.Context) (int, error)

	// Create はサロンを作成する。シード専用。
	Create(ctx context.Context, salon *model.Salon) error
}

// ServiceRepository は施術メニューデータの永続化インターフェース。
type ServiceRepository interface {
	// FindByID は指定IDの施術メニューを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.ServiceItem, error)

	// ListBySalonID は指定サロンの施術メニュー一覧を名前昇順で返す。
	ListBySalonID(ctx context.Context, salonID string) ([]*model.ServiceItem, error)

	// Create は施術メニューを作成する。シード専用。
	Create(ctx context.Context, service *model.ServiceItem) error
}

// BookingWithNames は予約とサロン名・施術メニュー名を結合した読み取り用の行。
type BookingWithNames struct {
	model.Booking
	SalonName   string
	ServiceName string
}

// BookingRepository は予約データの永続化インターフェース。
type BookingRepository interface {
	// Create は予約を作成する。
	Create(ctx context.Context, booking *model.Booking) error

	// ListBySubject は指定subjectの予約一覧をサロン名・施術メニュー名付きで
	// datetime降順で返す。
	ListBySubject(ctx context.Context, externalSubjectID string) ([]BookingWithNames, error)
}

// ProfileRepository はユーザープロフィールの永続化インターフェース。
type ProfileRepository interface {
	// GetOrCreate は指定subjectのプロフィールを取得し、存在しなければ作成して返す。
	// external_subject_idの一意制約により、同一subjectへの並行呼び出しでも
	// 作成される行は必ず1つであることを保証する。
	GetOrCreate(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error)
}
