package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/handler"
	"github.com/agendou/agendou-api/internal/model"
	"github.com/agendou/agendou-api/internal/service/appointment"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/httputil"
	"github.com/agendou/agendou-api/pkg/validator"
)

type Handler struct {
	svc       *appointment.Service
	validator *validator.Validator
	logger    zerolog.Logger
}

func NewHandler(svc *appointment.Service, v *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, validator: v, logger: logger}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.svc.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, apt)
}

func (h *Handler) Get(c *gin.Context) {
	apt, err := h.svc.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperror.InvalidArgument("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.svc.UpdateAppointment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	apt, err := h.svc.CancelAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// List requires exactly one party filter; the collection has no
// unscoped listing.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		apts []*model.Appointment
		err  error
	)
	switch {
	case c.Query("client") != "":
		apts, err = h.svc.ListByClient(ctx, c.Query("client"))
	case c.Query("professional") != "":
		apts, err = h.svc.ListByProfessional(ctx, c.Query("professional"))
	case c.Query("service") != "":
		apts, err = h.svc.ListByService(ctx, c.Query("service"))
	default:
		httputil.RespondWithError(c, apperror.InvalidArgument("one of client, professional or service query params is required"))
		return
	}
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apts)
}

func (h *Handler) Watch(c *gin.Context) {
	ctx := c.Request.Context()

	switch {
	case c.Query("client") != "":
		handler.ServeWatch(c, h.svc.WatchByClient(ctx, c.Query("client")), h.logger)
	case c.Query("professional") != "":
		handler.ServeWatch(c, h.svc.WatchByProfessional(ctx, c.Query("professional")), h.logger)
	default:
		httputil.RespondWithError(c, apperror.InvalidArgument("one of client or professional query params is required"))
	}
}
