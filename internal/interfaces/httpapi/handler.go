package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/findrival/internal/platform/logging"
	"github.com/riskibarqy/findrival/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type ServiceInfo struct {
	Name    string
	Version string
}

type Handler struct {
	teamService         *usecase.TeamService
	matchRequestService *usecase.MatchRequestService
	health              HealthChecker
	info                ServiceInfo
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	matchRequestService *usecase.MatchRequestService,
	health HealthChecker,
	info ServiceInfo,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:         teamService,
		matchRequestService: matchRequestService,
		health:              health,
		info:                info,
		logger:              logger,
		validator:           newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Root")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, serviceInfoDTO{
		Service: h.info.Name,
		Version: h.info.Version,
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	if h.health != nil {
		if err := h.health.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "error", err)
			writeError(ctx, w, fmt.Errorf("%w: store ping failed: %v", usecase.ErrDependencyUnavailable, err))
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type fieldViolation struct {
	Location     string
	LocationType string
	Message      string
}

// validationError carries one violation per offending field and matches
// usecase.ErrInvalidInput.
type validationError struct {
	fields []fieldViolation
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Location+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", usecase.ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *validationError) Unwrap() error {
	return usecase.ErrInvalidInput
}

func newValidationError(locationType string, fields ...fieldViolation) *validationError {
	for i := range fields {
		if fields[i].LocationType == "" {
			fields[i].LocationType = locationType
		}
	}
	return &validationError{fields: fields}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	fields := make([]fieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldViolation{
			Location: fieldLocation(fe.Namespace()),
			Message:  violationMessage(fe),
		})
	}
	return newValidationError("body", fields...)
}

// fieldLocation drops the root struct name from a validator namespace.
func fieldLocation(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "oneof":
		return fmt.Sprintf("value must be one of [%s]", fe.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s items", fe.Param())
	case "eq":
		return fmt.Sprintf("value must be %q", fe.Param())
	case "gte", "lte", "min", "max":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeJSON")
	defer span.End()

	if err := decodeBody(r.Body, dst); err != nil {
		return newValidationError("body", fieldViolation{
			Location: "body",
			Message:  "invalid JSON payload: " + err.Error(),
		})
	}
	return h.validateRequest(ctx, dst)
}
