package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tomoyuki65/users-api/internal/model"
)

// タグごとのバリデーションメッセージ
var validationMessages = map[string]string{
	"required": "必須項目です。",
	"email":    "メールアドレス形式で入力して下さい。",
}

// newValidator はJSONのフィールド名でエラーを報告するvalidatorを生成する。
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct は入力値を検証し、最初に失敗したフィールドからValidationErrorを生成する。
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return model.NewValidationError(err.Error())
	}

	first := verrs[0]
	msg, ok := validationMessages[first.Tag()]
	switch {
	case first.Tag() == "max":
		msg = fmt.Sprintf("%s文字以内で入力して下さい。", first.Param())
	case !ok:
		msg = "入力値が不正です。"
	}
	return model.NewValidationError(fmt.Sprintf("%s: %s", first.Field(), msg))
}
