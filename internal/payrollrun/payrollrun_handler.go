package payrollrun

import (
	"io"
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payrollrun.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollrun.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Start(c *gin.Context) {
	actorID := c.GetString("user_id")

	var req StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http start payroll run validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.StartRun(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, result, nil)
}

func (h *Handler) Status(c *gin.Context) {
	result, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

// Watch streams per-employee progress ticks as server-sent events until the
// session finishes or the client goes away.
func (h *Handler) Watch(c *gin.Context) {
	sessionID := c.Param("id")

	status, err := h.service.GetStatus(c.Request.Context(), sessionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	ticks, cancel := h.service.WatchProgress(sessionID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	// The current snapshot first, so a late subscriber is not blind.
	c.SSEvent("progress", Progress{
		SessionID:      sessionID,
		Status:         status.Status,
		TotalEmployees: status.TotalEmployees,
		ProcessedCount: status.ProcessedCount,
	})
	c.Writer.Flush()

	if status.Status != SessionStatusProcessing {
		return
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case tick, ok := <-ticks:
			if !ok {
				return false
			}
			c.SSEvent("progress", tick)
			return tick.Status == SessionStatusProcessing
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) Results(c *gin.Context) {
	results, err := h.service.ListResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results, nil)
}

func (h *Handler) Reset(c *gin.Context) {
	result, err := h.service.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}
