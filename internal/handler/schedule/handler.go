package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/handler"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/service/schedule"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/httputil"
	"github.com/agendou/agendou-api/pkg/validator"
)

type Handler struct {
	svc       *schedule.Service
	validator *validator.Validator
	logger    zerolog.Logger
}

func NewHandler(svc *schedule.Service, v *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, validator: v, logger: logger}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateWorkScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	ws, err := h.svc.CreateWorkSchedule(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, ws)
}

func (h *Handler) Get(c *gin.Context) {
	ws, err := h.svc.GetWorkSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, ws)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateWorkScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	ws, err := h.svc.UpdateWorkSchedule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, ws)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteWorkSchedule(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) List(c *gin.Context) {
	professional := c.Query("professional")
	if professional == "" {
		httputil.RespondWithError(c, apperror.InvalidArgument("professional query param is required"))
		return
	}

	schedules, err := h.svc.ListByProfessional(c.Request.Context(), professional)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, schedules)
}

func (h *Handler) Watch(c *gin.Context) {
	professional := c.Query("professional")
	if professional == "" {
		httputil.RespondWithError(c, apperror.InvalidArgument("professional query param is required"))
		return
	}
	handler.ServeWatch(c, h.svc.WatchByProfessional(c.Request.Context(), professional), h.logger)
}
