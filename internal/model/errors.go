// Package model はドメインモデルとエラー分類を定義する。
package model

import (
	"fmt"
	"net/http"
)

// ErrorKind はエラーの分類。ユースケース層はこの分類からHTTPステータスを決定する。
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindPersistence  ErrorKind = "persistence"
	KindUnauthorized ErrorKind = "unauthorized"
	KindRateLimited  ErrorKind = "rate_limited"
	KindInternal     ErrorKind = "internal"
)

// APIError は全レイヤー共通のエラー型。
// Messageはクライアントに返す文言、Errは内部原因（ログにのみ出力する）。
// StatusCodeが0でない場合はKindによる判定より優先される。
type APIError struct {
	Kind       ErrorKind
	Code       string
	Message    string
	StatusCode int
	Err        error
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap は内部原因を返す。
func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus はエラーに対応するHTTPステータスコードを返す。
func (e *APIError) HTTPStatus() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
type ErrorResponseBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseBody はクライアントに返すエラーボディを返す。内部原因は含めない。
func (e *APIError) ResponseBody() ErrorResponseBody {
	return ErrorResponseBody{Code: e.Code, Message: e.Message}
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodePersistence        = "PERSISTENCE_ERROR"
	ErrCodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError は入力値検証エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError(err error) *APIError {
	return &APIError{
		Kind:       KindValidation,
		Code:       ErrCodeInvalidRequest,
		Message:    "リクエストボディの解析に失敗しました。",
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewUserNotFoundError は有効な対象ユーザーが存在しない場合のエラーを生成する。
func NewUserNotFoundError(uid string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("対象ユーザーが見つかりません: %s", uid),
	}
}

// NewPersistenceError はデータストアの失敗を表すエラーを生成する。
func NewPersistenceError(message string, err error) *APIError {
	return &APIError{
		Kind:    KindPersistence,
		Code:    ErrCodePersistence,
		Message: message,
		Err:     err,
	}
}

// NewEmailAlreadyExistsError はメールアドレスの一意制約違反エラーを生成する。
func NewEmailAlreadyExistsError(err error) *APIError {
	return &APIError{
		Kind:       KindPersistence,
		Code:       ErrCodeEmailAlreadyExists,
		Message:    "このメールアドレスは既に使用されています。",
		StatusCode: http.StatusConflict,
		Err:        err,
	}
}

// NewUnauthorizedError は認証情報が不足している場合のエラーを生成する。
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Kind:    KindUnauthorized,
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

// NewRateLimitError はレート制限超過エラーを生成する。
func NewRateLimitError() *APIError {
	return &APIError{
		Kind:    KindRateLimited,
		Code:    ErrCodeRateLimitExceeded,
		Message: "リクエストが多すぎます。しばらく待ってから再度お試しください。",
	}
}

// NewInternalServerError は内部サーバーエラーを生成する。
func NewInternalServerError(err error) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Code:    ErrCodeInternal,
		Message: "Internal Server Error",
		Err:     err,
	}
}
