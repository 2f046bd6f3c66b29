package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidationError is a client-side form rejection. It is reported to the
// user before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// firstInvalid runs struct-tag validation and maps the first failing field
// to its user-facing message
func firstInvalid(form interface{}, messages map[string]string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	for _, fe := range err.(validator.ValidationErrors) {
		msg, ok := messages[fe.StructField()]
		if !ok {
			msg = "Semua field bertanda * harus diisi"
		}
		return &ValidationError{Field: fe.StructField(), Message: msg}
	}
	return nil
}
