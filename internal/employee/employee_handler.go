package employee

import (
	"errors"
	"io"
	"net/http"
	"strings"

	employeeerrors "go-empedge/internal/employee/errors"
	"go-empedge/internal/shared/apperror"
	"go-empedge/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgEmployeeAdded   = "Employee added"
	msgEmployeeUpdated = "Employee updated"
	msgEmployeeDeleted = "Employee deleted"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Message, httpErr.Fields)
}

// bindError maps a JSON binding failure. An empty body is treated like a body
// with every field missing.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return apperror.MapValidationError(verrs, employeeerrors.ErrMissingRequiredFields)
	case errors.Is(err, io.EOF):
		return employeeerrors.ErrMissingRequiredFields
	default:
		return apperror.ErrInvalidBody
	}
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create employee")
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, bindError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Created(c, http.StatusOK, msgEmployeeAdded, resp.ID)
}

// GetAll returns every employee, newest first. The optional q parameter keeps
// only employees whose name or position contains it, ignoring case.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get all employees")

	resp, err := h.service.GetAll(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if resp == nil {
		resp = []EmployeeResponse{}
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Position), q) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", id))

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http update employee", zap.String("employee_id", id))
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, bindError(err))
		return
	}

	if _, err := h.service.Update(ctx, id, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, msgEmployeeUpdated)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http delete employee", zap.String("employee_id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, msgEmployeeDeleted)
}
