// Package validate aplica as tags `validate` dos structs de domínio e traduz
// as falhas para ValidationError.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "goestoque/internal/errors"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida s. Devolve nil ou um ValidationError com todos os campos inválidos.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidationError(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperror.NewValidationError(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s deve ter pelo menos %s elemento(s)", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s deve ser uma URL válida", field)
	case "oneof":
		return fmt.Sprintf("%s deve ser um de [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s falhou na regra %s", field, fe.Tag())
	}
}
