package review

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/handler"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/service/review"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/httputil"
	"github.com/agendou/agendou-api/pkg/validator"
)

type Handler struct {
	svc       *review.Service
	validator *validator.Validator
	logger    zerolog.Logger
}

func NewHandler(svc *review.Service, v *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, validator: v, logger: logger}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rev, err := h.svc.CreateReview(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, rev)
}

func (h *Handler) Get(c *gin.Context) {
	rev, err := h.svc.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, rev)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rev, err := h.svc.UpdateReview(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, rev)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		revs []*model.Review
		err  error
	)
	switch {
	case c.Query("professional") != "":
		revs, err = h.svc.ListByProfessional(ctx, c.Query("professional"))
	case c.Query("appointment") != "":
		revs, err = h.svc.ListByAppointment(ctx, c.Query("appointment"))
	default:
		httputil.RespondWithError(c, apperror.InvalidArgument("one of professional or appointment query params is required"))
		return
	}
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, revs)
}

func (h *Handler) Watch(c *gin.Context) {
	professional := c.Query("professional")
	if professional == "" {
		httputil.RespondWithError(c, apperror.InvalidArgument("professional query param is required"))
		return
	}
	handler.ServeWatch(c, h.svc.WatchByProfessional(c.Request.Context(), professional), h.logger)
}
