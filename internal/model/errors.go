// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError はAPIの統一エラーフォーマットを表す。
// MessageはレスポンスエンベロープのmessageフィールドにそのままUI表示される。
type APIError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeSalonNotFound   = "SALON_NOT_FOUND"
	ErrCodeServiceNotFound = "SERVICE_NOT_FOUND"
	ErrCodeServiceMismatch = "SERVICE_SALON_MISMATCH"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// NewSalonNotFoundError はサロン未検出エラーを生成する。
func NewSalonNotFoundError(salonID string) *APIError {
	return &APIError{
		Code:    ErrCodeSalonNotFound,
		Message: fmt.Sprintf("salon introuvable: %s", salonID),
	}
}

// NewServiceNotFoundError は施術メニュー未検出エラーを生成する。
func NewServiceNotFoundError(serviceID string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceNotFound,
		Message: fmt.Sprintf("service introuvable: %s", serviceID),
	}
}

// NewServiceMismatchError は施術メニューが指定サロンに属していない場合のエラーを生成する。
func NewServiceMismatchError(serviceID, salonID string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceMismatch,
		Message: fmt.Sprintf("le service %s n'appartient pas au salon %s", serviceID, salonID),
	}
}

// NewValidationError はリクエストボディの検証エラーを生成する。
// メッセージは最初に失敗したフィールドについて "<field>: <message>" 形式で返す。
func NewValidationError(field, message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// NewUnauthorizedError は認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: "authentification requise",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、クライアントには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:    ErrCodeInternal,
		Message: "Erreur serveur",
	}
}
