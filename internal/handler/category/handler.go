package category

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/handler"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/service/category"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/httputil"
	"github.com/agendou/agendou-api/pkg/validator"
)

type Handler struct {
	svc       *category.Service
	validator *validator.Validator
	logger    zerolog.Logger
}

func NewHandler(svc *category.Service, v *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, validator: v, logger: logger}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	cat, err := h.svc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, cat)
}

func (h *Handler) Get(c *gin.Context) {
	cat, err := h.svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cat)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	cat, err := h.svc.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cat)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) List(c *gin.Context) {
	cats, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cats)
}

func (h *Handler) Watch(c *gin.Context) {
	handler.ServeWatch(c, h.svc.WatchAll(c.Request.Context()), h.logger)
}
