package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vehicle-service/internal/model"
	"vehicle-service/internal/repository"
	"vehicle-service/internal/service"
)

type Handler struct {
	vehicles *service.VehicleService
	log      zerolog.Logger
}

func NewHandler(vehicles *service.VehicleService, log zerolog.Logger) *Handler {
	return &Handler{
		vehicles: vehicles,
		log:      log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/:id", h.getVehicle)
		vehicles.PUT("/:id", h.updateVehicle)
		vehicles.DELETE("/:id", h.deleteVehicle)
	}
}

func (h *Handler) createVehicle(c *gin.Context) {
	var candidate model.Vehicle
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	h.log.Info().Str("license_plate", candidate.LicensePlate).Msg("creating vehicle")

	vehicle, err := h.vehicles.Create(c.Request.Context(), &candidate)
	if err != nil {
		if errors.Is(err, service.ErrEventPublish) && vehicle != nil {
			// The write committed; only the notification failed. Hand the
			// persisted entity back so callers can reconcile the stream.
			h.log.Error().Err(err).Str("vehicle_id", vehicle.ID.String()).Msg("event publish failed after create")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "data": vehicle})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	var candidate model.Vehicle
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	h.log.Info().Str("vehicle_id", id.String()).Msg("updating vehicle")

	vehicle, err := h.vehicles.Update(c.Request.Context(), id, &candidate)
	if err != nil {
		if errors.Is(err, service.ErrEventPublish) && vehicle != nil {
			h.log.Error().Err(err).Str("vehicle_id", id.String()).Msg("event publish failed after update")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "data": vehicle})
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	h.log.Info().Str("vehicle_id", id.String()).Msg("deleting vehicle")

	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventPublish) {
			h.log.Error().Err(err).Str("vehicle_id", id.String()).Msg("event publish failed after delete")
			c.JSON(http.StatusBadGateway, errorResponse(err.Error()))
			return
		}
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := h.vehicleID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) listVehicles(c *gin.Context) {
	filter := repository.VehicleListFilter{}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		vs := model.VehicleStatus(strings.ToUpper(status))
		filter.Status = &vs
	}
	if vehicleType := strings.TrimSpace(c.Query("type")); vehicleType != "" {
		vt := model.VehicleType(strings.ToUpper(vehicleType))
		filter.Type = &vt
	}
	if routeID := strings.TrimSpace(c.Query("route_id")); routeID != "" {
		filter.RouteID = &routeID
	}

	page := 1
	size := 20
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(c.Query("page_size")); err == nil && s > 0 && s <= 200 {
		size = s
	}

	vehicles, total, err := h.vehicles.List(c.Request.Context(), filter, (page-1)*size, size)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles, "total": total})
}

func (h *Handler) vehicleID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "violations": validationErr.Violations})
	case errors.Is(err, service.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrRouteNotFound):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrDependencyUnavailable):
		h.log.Error().Err(err).Msg("dependency unavailable")
		c.JSON(http.StatusServiceUnavailable, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
