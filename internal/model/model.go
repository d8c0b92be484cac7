// Package model はドメインモデルを定義する。
package model

import "time"

// Salon は予約可能なサロン（店舗）を表す。
type Salon struct {
	ID        string
	Name      string
	Address   string
	Rating    float64
	CreatedAt time.Time
}

// ServiceItem はサロンが提供する施術メニューを表す。
// 1つの施術メニューは必ず1つのサロンに属する。
type ServiceItem struct {
	ID              string
	SalonID         string
	Name            string
	Price           int // 最小通貨単位（FCFA）
	DurationMinutes int
	CreatedAt       time.Time
}

// Role はユーザープロフィールのロールを表す。
type Role string

const (
	// RoleClient は一般利用者ロール。新規プロフィールのデフォルト。
	RoleClient Role = "client"
	// RoleOwner はサロンオーナーロール。昇格は外部（管理）操作でのみ行われる。
	RoleOwner Role = "owner"
	// RoleAdmin は管理者ロール。昇格は外部（管理）操作でのみ行われる。
	RoleAdmin Role = "admin"
)

// UserProfile は外部IdPのユーザーに紐づくローカルプロフィールを表す。
// ExternalSubjectIDはIdPのsubjectクレームであり、一意制約を持つ。
type UserProfile struct {
	ID                string
	ExternalSubjectID string
	Role              Role
	CreatedAt         time.Time
}

// BookingStatus は予約の状態を表す。
type BookingStatus string

const (
	// BookingStatusPending は作成直後の予約状態。本コアが割り当てる唯一の状態。
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusConfirmed は確定済みの予約状態。状態遷移操作は本コアの対象外。
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusCancelled はキャンセル済みの予約状態。
	BookingStatusCancelled BookingStatus = "cancelled"
	// BookingStatusCompleted は完了済みの予約状態。
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking はユーザーによる施術メニューの予約を表す。
// TotalはBooking作成時点の施術メニュー価格のコピーであり、
// 以後の価格変更の影響を受けない。
type Booking struct {
	ID                string
	ExternalSubjectID string
	SalonID           string
	ServiceID         string
	Datetime          time.Time
	Status            BookingStatus
	Total             int
	CreatedAt         time.Time
}
