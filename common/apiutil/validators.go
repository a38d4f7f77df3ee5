package apiutil

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Aidin1998/marketgw/common/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// RegisterValidatorTagNames makes gin's validator report fields by their
// form or json name instead of the Go field name.
func RegisterValidatorTagNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// BindQuery binds and validates query parameters into obj. Failures come
// back as a validation problem ready to write.
func BindQuery(c *gin.Context, obj any) error {
	RegisterValidatorTagNames()
	if err := c.ShouldBindQuery(obj); err != nil {
		return ValidationProblem(c, err)
	}
	return nil
}

// ValidationProblem translates a binding error into a 400 problem with one
// entry per offending field.
func ValidationProblem(c *gin.Context, err error) *errors.ProblemDetails {
	problem := errors.NewValidationError(errors.ErrValidation.Error(), c.Request.URL.Path)

	var fieldsError validator.ValidationErrors
	if stderrors.As(err, &fieldsError) {
		for _, fieldErr := range fieldsError {
			problem.AddValidationError(fieldErr.Field(), validationMessage(fieldErr), fieldErr.Tag())
		}
		return problem
	}

	var numErr *strconv.NumError
	if stderrors.As(err, &numErr) {
		for _, field := range queryFieldsWithValue(c, numErr.Num) {
			problem.AddValidationError(field, "must be an integer", "integer")
		}
		if len(problem.Errors) == 0 {
			problem.AddValidationError("query", "must be an integer", "integer")
		}
		return problem
	}

	problem.Detail = fmt.Sprintf("%s: %v", errors.ErrValidation, err)
	return problem
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// queryFieldsWithValue lists the query keys carrying value, sorted.
func queryFieldsWithValue(c *gin.Context, value string) []string {
	var fields []string
	for key, values := range c.Request.URL.Query() {
		for _, v := range values {
			if v == value {
				fields = append(fields, key)
				break
			}
		}
	}
	sort.Strings(fields)
	return fields
}
