package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/yashrajoria/storefront-service/common/errors"
)

// Pagination bounds
const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// CreateProductRequest defines the expected body for POST /products. Name is
// a pointer so that an empty string is accepted but a missing field is not.
type CreateProductRequest struct {
	Name  *string  `json:"name" binding:"required"`
	Price float64  `json:"price" binding:"required,gt=0"`
	Sizes []string `json:"sizes" binding:"required,min=1,dive,required"`
}

type OrderItemRequest struct {
	ProductID *string `json:"productId" binding:"required"`
	Qty       int     `json:"qty" binding:"required,gt=0"`
}

// CreateOrderRequest defines the expected body for POST /orders.
type CreateOrderRequest struct {
	UserID *string            `json:"userId" binding:"required"`
	Items  []OrderItemRequest `json:"items" binding:"required,dive"`
}

type ListProductsQuery struct {
	Name   string `form:"name"`
	Size   string `form:"size"`
	Limit  int    `form:"limit,default=10" binding:"gt=0,lte=1000"`
	Offset int    `form:"offset,default=0" binding:"gte=0"`
}

type ListOrdersQuery struct {
	Limit  int `form:"limit,default=10" binding:"gt=0,lte=1000"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

// FieldError is one entry of a 422 response's details.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// registerTagNames makes validation errors report json/form names instead of
// Go field names.
func registerTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindingError converts a gin binding failure into a 422 application error.
func bindingError(err error) *apperrors.Error {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		numErr    *strconv.NumError
	)

	switch {
	case errors.As(err, &verrs):
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:   fieldPath(fe.Namespace()),
				Rule:    fe.Tag(),
				Message: describe(fe),
			})
		}
		return apperrors.Validation("Validation error", details)
	case errors.As(err, &typeErr):
		return apperrors.Validation("Validation error", []FieldError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}})
	case errors.As(err, &syntaxErr):
		return apperrors.Validation("Validation error", []FieldError{{
			Field:   "body",
			Rule:    "json",
			Message: syntaxErr.Error(),
		}})
	case errors.As(err, &numErr):
		return apperrors.Validation("Validation error", []FieldError{{
			Field:   "query",
			Rule:    "type",
			Message: fmt.Sprintf("%q is not a valid integer", numErr.Num),
		}})
	default:
		return apperrors.Validation("Validation error", []FieldError{{
			Field:   "body",
			Rule:    "invalid",
			Message: err.Error(),
		}})
	}
}

// fieldPath drops the root struct name: "CreateOrderRequest.items[0].qty"
// becomes "items[0].qty".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
