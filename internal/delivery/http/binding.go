package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"dreamscribe/internal/model"
)

var registerFieldNames sync.Once

// useJSONFieldNames заставляет валидатор gin называть поля по json-тегам,
// чтобы details в ответе совпадали с ключами запроса.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// bindJSON декодирует и валидирует тело запроса через gin. При ошибке сам отвечает 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondValidation(c, validationDetails(verrs)...)
	case errors.Is(err, io.EOF):
		respondValidation(c, FieldError{Field: "body", Message: "request body is required"})
	default:
		respondValidation(c, decodeError(err))
	}
	return false
}

// decodeMemoryPatch строго декодирует патч памяти: неизвестные ключи запрещены.
func decodeMemoryPatch(raw []byte) (model.MemoryPatch, []FieldError) {
	var patch model.MemoryPatch
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return patch, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		fe := decodeError(err)
		if fe.Field == "body" {
			fe.Field = "memory"
		} else {
			fe.Field = "memory." + fe.Field
		}
		return patch, []FieldError{fe}
	}
	if err := patch.Validate(); err != nil {
		return patch, []FieldError{{Field: "memory", Message: strings.TrimPrefix(err.Error(), model.ErrInvalidInput.Error()+": ")}}
	}
	return patch, nil
}

func decodeError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return FieldError{Field: typeErr.Field, Message: fmt.Sprintf("must be of type %s", typeErr.Type)}
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return FieldError{Field: field, Message: "unknown field"}
	}
	return FieldError{Field: "body", Message: "malformed JSON"}
}

func validationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return details
}

// fieldPath убирает имя корневой структуры из пути поля.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "hexcolor":
		return "must be a hex color"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// parseID читает положительный целочисленный параметр пути.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondValidation(c, FieldError{Field: name, Message: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// parseLimit читает необязательный ?limit=N. 0 или отсутствие - без ограничения.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondValidation(c, FieldError{Field: "limit", Message: "must be a non-negative integer"})
		return 0, false
	}
	return limit, true
}
