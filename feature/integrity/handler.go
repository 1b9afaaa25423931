package integrity

import (
	"errors"

	"pokemon-service/core/logger"
	"pokemon-service/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.ServerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/server", h.HandleServerCheck)
	group.Get("/reports", h.HandleReportsCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the schema check and lists archived cleaning reports.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	// Server
	if srvReport, err := h.service.CheckServer(ctx); err != nil {
		l.Error("Server check failed", zap.Error(err))
		report["server"] = map[string]interface{}{"status": "error", "error": "schema inspection failed"}
	} else {
		report["server"] = srvReport
	}

	// Reports
	switch keys, err := h.service.CheckReports(ctx); {
	case errors.Is(err, ErrStorageDisabled):
		report["reports"] = map[string]interface{}{"status": "disabled"}
	case err != nil:
		l.Error("Report listing failed", zap.Error(err))
		report["reports"] = map[string]interface{}{"status": "error", "error": "report storage unreachable"}
	default:
		report["reports"] = map[string]interface{}{"status": "ok", "reports": keys}
	}

	return c.JSON(report)
}

// HandleServerCheck checks the database schema.
// @Summary Check Server Schema
// @Description Validates that the connected database has every table and column the service reads and writes.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckServer(c.UserContext())
	if err != nil {
		l.Error("Server check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "schema inspection failed"})
	}

	if !report.Matched {
		l.Warn("Schema mismatch detected", zap.Any("tables", report.Tables), zap.Strings("errors", report.Errors))
	}

	return c.JSON(report)
}

// HandleReportsCheck lists archived cleaning reports.
// @Summary List Cleaning Reports
// @Description Lists the cleaning reports archived in object storage.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Report keys"
// @Failure 404 {object} map[string]string "Storage disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/reports [get]
func (h *Handler) HandleReportsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.CheckReports(c.UserContext())
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Report listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "report storage unreachable"})
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"reports": keys,
	})
}
