package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/generalbooks/general_ledger_app/internal/apperrors"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerHomeRoutes(r)

	// Setup API v1 routes with identity middleware, passing service interfaces
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	// All ledger data is scoped to a workplace
	workplaces := v1.Group("/workplaces/:workplace_id")
	registerAccountRoutes(workplaces, services.Account)
	registerEntryRoutes(workplaces, services.Posting, services.Reporting)
	registerReportingRoutes(workplaces, services.Reporting)
}

// handleServiceError translates service errors into HTTP responses. The typed
// errors carry their own payload; sentinel matches fall through to plain
// status codes.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, defaultMsg string) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		logger.Warn("Validation failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation failed",
			"violations": validationErr.Violations,
		})
		return
	}

	var unbalancedErr *apperrors.UnbalancedEntryError
	if errors.As(err, &unbalancedErr) {
		logger.Warn("Unbalanced entry rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       unbalancedErr.Error(),
			"totalDebit":  unbalancedErr.TotalDebit,
			"totalCredit": unbalancedErr.TotalCredit,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrImmutable),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
			logger.Warn("Request failed", slog.String("error", err.Error()))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error(defaultMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": defaultMsg})
	}
}

const queryDateFormat = "2006-01-02"

// parseDateQuery reads a yyyy-mm-dd query parameter, returning the fallback
// when absent. The bool result reports whether the value parsed cleanly.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := time.Parse(queryDateFormat, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, expected " + queryDateFormat})
		return time.Time{}, false
	}
	return parsed, true
}
