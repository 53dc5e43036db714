package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"devprofile/internal/profile/domain/values"
)

const tagEndDate = "enddate"

// Validator проверяет команды по тегам validate и правилам уровня структуры.
type Validator struct {
	validate *validator.Validate
}

// NewValidator настраивает validator: имена полей берутся из json-тегов.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterStructValidation(validateWorkPeriod, WorkExperienceInput{})
	return &Validator{validate: v}
}

func validateWorkPeriod(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(WorkExperienceInput)
	if !ok || in.EndDate == nil || in.StartDate.IsZero() {
		return
	}
	if in.EndDate.Before(in.StartDate) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", tagEndDate, "")
	}
}

// Validate возвращает ошибку валидации или nil.
func (v *Validator) Validate(cmd any) *Error {
	err := v.validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationFailed(FieldViolation{Field: "request", Message: err.Error()})
	}

	details := make([]FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, FieldViolation{
			Field:   fieldPath(fe.Namespace()),
			Message: violationMessage(fe),
		})
	}
	return ValidationFailed(details...)
}

// fieldPath убирает имя корневой структуры из пространства имен.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "url":
		return "must be an absolute URL"
	case "email":
		return "must be a valid email address"
	case tagEndDate:
		return "must not be earlier than startDate"
	default:
		return "failed on " + fe.Tag()
	}
}

// asValidation переводит ошибку объекта-значения в бизнес-ошибку.
// Для остальных ошибок возвращает nil.
func asValidation(err error) *Error {
	var vErr *values.ValidationError
	if errors.As(err, &vErr) {
		return ValidationFailed(FieldViolation{Field: vErr.Field, Message: vErr.Message})
	}
	return nil
}
