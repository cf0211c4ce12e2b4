package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"academy-service/internal/apperr"
	"academy-service/internal/logx"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type errResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string, details ...string) {
	logger.Warn("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, errResponse{Error: msg, Details: details})
}

// writeDomainError maps service failures onto HTTP statuses.
func writeDomainError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrAlreadyConnected), errors.Is(err, apperr.ErrNotConnected):
		writeError(logger, w, r, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, "conflict")
	default:
		logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	return decodeBody(logger, w, r, dst, false)
}

// decodeOptionalJSON accepts an empty body and leaves dst untouched.
func decodeOptionalJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	return decodeBody(logger, w, r, dst, true)
}

func decodeBody[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return validateBody(logger, w, r, dst)
		}
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return validateBody(logger, w, r, dst)
}

func validateBody(logger logx.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	err := validate.Struct(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(logger, w, r, http.StatusBadRequest, "invalid request")
		return false
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, formatValidationError(fe))
	}
	writeError(logger, w, r, http.StatusUnprocessableEntity, "validation failed", details...)
	return false
}

func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is a required field"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return "maximum length for the " + field + " is " + e.Param() + " characters"
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// idsFromURL reads two path ids, writing a 400 when either is malformed.
func idsFromURL(logger logx.Logger, w http.ResponseWriter, r *http.Request, first, second string) (int64, int64, bool) {
	a, err := idFromURL(r, first)
	if err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid "+first)
		return 0, 0, false
	}
	b, err := idFromURL(r, second)
	if err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid "+second)
		return 0, 0, false
	}
	return a, b, true
}
