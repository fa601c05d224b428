package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// fieldErrors maps a form field name to its messages
type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

var registerOnce sync.Once

// RegisterValidators installs the custom validation rules and makes
// validation errors report form/json field names. Safe to call repeatedly.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("unexpected validator engine")
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
		err = errors.Join(
			v.RegisterValidation("decimal", isDecimal),
			v.RegisterValidation("integer", isInt32),
			v.RegisterValidation("maxbytes", maxBytes),
			v.RegisterValidation("notblank", validators.NotBlank),
		)
	})
	return err
}

func isDecimal(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// isInt32 accepts signed base-10 integers that fit an INTEGER column
func isInt32(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 32)
	return err == nil
}

// maxBytes bounds the encoded length; max counts runes
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// bindForm binds a url-encoded form. Validation failures come back as field
// errors; any other binding failure is returned as err.
func bindForm(c *gin.Context, form any) (fieldErrors, error) {
	errs := fieldErrors{}
	err := c.ShouldBindWith(form, binding.Form)
	if err == nil {
		return errs, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	for _, fe := range verrs {
		errs.add(fe.Field(), validationMessage(fe))
	}
	return errs, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "eqfield":
		return "Passwords do not match"
	case "integer":
		return "Not a valid integer value."
	case "decimal":
		return "Not a valid decimal value."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("Field cannot be longer than %s bytes.", fe.Param())
	default:
		return "Invalid value."
	}
}
