package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/handler"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/service/catalog"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/httputil"
	"github.com/agendou/agendou-api/pkg/validator"
)

type Handler struct {
	svc       *catalog.Service
	validator *validator.Validator
	logger    zerolog.Logger
}

func NewHandler(svc *catalog.Service, v *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, validator: v, logger: logger}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	svc, err := h.svc.CreateService(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, svc)
}

func (h *Handler) Get(c *gin.Context) {
	svc, err := h.svc.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, svc)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	svc, err := h.svc.UpdateService(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, svc)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// List supports optional professional and category filters.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		services []*model.Service
		err      error
	)
	switch {
	case c.Query("professional") != "":
		services, err = h.svc.ListByProfessional(ctx, c.Query("professional"))
	case c.Query("category") != "":
		services, err = h.svc.ListByCategory(ctx, c.Query("category"))
	default:
		services, err = h.svc.ListServices(ctx)
	}
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, services)
}

// Watch streams result-set snapshots over a websocket, filtered the same
// way List is.
func (h *Handler) Watch(c *gin.Context) {
	ctx := c.Request.Context()

	switch {
	case c.Query("professional") != "":
		handler.ServeWatch(c, h.svc.WatchByProfessional(ctx, c.Query("professional")), h.logger)
	case c.Query("category") != "":
		handler.ServeWatch(c, h.svc.WatchByCategory(ctx, c.Query("category")), h.logger)
	default:
		handler.ServeWatch(c, h.svc.WatchAll(ctx), h.logger)
	}
}
