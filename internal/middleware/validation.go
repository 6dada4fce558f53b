package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

// RegisterJSONFieldNames makes validation errors report json field names
// ("semester1_grade") instead of Go field names ("Semester1Grade").
func RegisterJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// BindJSON binds the request body into obj and writes a 400 response on failure.
// It reports whether the handler may continue.
func BindJSON(c *gin.Context, obj interface{}, message string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		detail = describeBindError(detail, err)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}

// ParseIDParam reads an int64 path parameter and writes a 400 response on failure.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidPathParam, apperrors.ErrInvalidStudentID.Error()).
			WithField(name)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

func describeBindError(detail *dto.ErrorDetail, err error) *dto.ErrorDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]dto.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, dto.FieldError{
				Field:   fe.Field(),
				Message: formatValidationError(fe),
			})
		}
		return detail.WithDetails(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		detail.Code = dto.ErrorCodeMalformedBody
		// an empty field means the top-level value itself has the wrong type
		if typeErr.Field == "" {
			return detail.WithDetails("request body must be a JSON object")
		}
		return detail.WithField(typeErr.Field).WithDetails([]dto.FieldError{{
			Field:   typeErr.Field,
			Message: typeErr.Field + " must be of type " + typeErr.Type.String(),
		}})
	}

	detail.Code = dto.ErrorCodeMalformedBody
	if errors.Is(err, io.EOF) {
		return detail.WithDetails("request body is empty")
	}
	return detail.WithDetails(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
