package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"adv-service/internal/infrastructure/metrics"
	"adv-service/internal/service"
	"adv-service/internal/validation"
	"adv-service/pkg/logger"
	"adv-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const notFoundMessage = "Advertisement not found"

type AdvHandler struct {
	service service.AdvService
	logger  *logger.Loggers
	metrics *metrics.HandlerMetrics
	tracer  trace.Tracer
}

func NewAdvHandler(service service.AdvService, logger *logger.Loggers, metrics *metrics.HandlerMetrics) *AdvHandler {
	tracer := otel.Tracer("adv-service/handler")
	return &AdvHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

func (h *AdvHandler) advID(r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	if idParam == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondValidationError surfaces the offending field as structured detail;
// anything that is not a validation error at this point is a programming
// error and reported as such.
func (h *AdvHandler) respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, verr)
		return
	}
	h.logger.ErrorLogger.Error("unexpected validation failure", utils.Err(err))
	utils.RespondWithErrorJSON(w, http.StatusInternalServerError, "internal server error")
}

func (h *AdvHandler) CreateAdv(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateAdv")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		h.metrics.RequestCount.WithLabelValues("POST", "/adv/", status).Inc()
		h.metrics.RequestDuration.WithLabelValues("POST", "/adv/", status).Observe(duration)
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		status = "error"
		h.logger.ErrorLogger.Error("failed to read request body", utils.Err(err))
		span.RecordError(err)
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	fields, err := validation.ValidateCreate(body)
	if err != nil {
		status = "error"
		span.RecordError(err)
		h.respondValidationError(w, err)
		return
	}

	span.SetAttributes(attribute.String("adv.header", fields.Header))

	createdAdv, err := h.service.CreateAdv(ctx, fields)
	if err != nil {
		status = "error"
		h.logger.ErrorLogger.Error("failed to create advertisement", utils.Err(err))
		span.RecordError(err)
		utils.RespondWithErrorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{"id": createdAdv.ID})
}

func (h *AdvHandler) GetAdvByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetAdvByID")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		h.metrics.RequestCount.WithLabelValues("GET", "/adv/{id}/", status).Inc()
		h.metrics.RequestDuration.WithLabelValues("GET", "/adv/{id}/", status).Observe(duration)
	}()

	id, ok := h.advID(r)
	if !ok {
		status = "error"
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	span.SetAttributes(attribute.Int64("adv.id", id))

	adv, err := h.service.GetAdvByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			status = "error"
			utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		} else if errors.Is(err, service.ErrAdvNotFound) {
			status = "not_found"
			utils.RespondWithErrorJSON(w, http.StatusNotFound, notFoundMessage)
		} else {
			status = "error"
			h.logger.ErrorLogger.Error("failed to get advertisement", utils.Err(err))
			utils.RespondWithErrorJSON(w, http.StatusInternalServerError, "internal server error")
		}
		span.RecordError(err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, adv)
}

func (h *AdvHandler) UpdateAdv(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateAdv")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		h.metrics.RequestCount.WithLabelValues("PATCH", "/adv/{id}/", status).Inc()
		h.metrics.RequestDuration.WithLabelValues("PATCH", "/adv/{id}/", status).Observe(duration)
	}()

	id, ok := h.advID(r)
	if !ok {
		status = "error"
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		status = "error"
		h.logger.ErrorLogger.Error("failed to read request body", utils.Err(err))
		span.RecordError(err)
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patch, err := validation.ValidateUpdate(body)
	if err != nil {
		status = "error"
		span.RecordError(err)
		h.respondValidationError(w, err)
		return
	}

	span.SetAttributes(
		attribute.Int64("adv.id", id),
		attribute.Int("adv.patch_fields", len(patch)),
	)

	updatedAdv, err := h.service.UpdateAdv(ctx, id, patch)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			status = "error"
			utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		} else if errors.Is(err, service.ErrAdvNotFound) {
			status = "not_found"
			utils.RespondWithErrorJSON(w, http.StatusNotFound, notFoundMessage)
		} else {
			status = "error"
			h.logger.ErrorLogger.Error("failed to update advertisement", utils.Err(err))
			utils.RespondWithErrorJSON(w, http.StatusInternalServerError, "internal server error")
		}
		span.RecordError(err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updatedAdv)
}

func (h *AdvHandler) DeleteAdv(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DeleteAdv")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		h.metrics.RequestCount.WithLabelValues("DELETE", "/adv/{id}/", status).Inc()
		h.metrics.RequestDuration.WithLabelValues("DELETE", "/adv/{id}/", status).Observe(duration)
	}()

	id, ok := h.advID(r)
	if !ok {
		status = "error"
		utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	span.SetAttributes(attribute.Int64("adv.id", id))

	if err := h.service.DeleteAdv(ctx, id); err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			status = "error"
			utils.RespondWithErrorJSON(w, http.StatusBadRequest, "invalid id parameter")
		} else if errors.Is(err, service.ErrAdvNotFound) {
			status = "not_found"
			utils.RespondWithErrorJSON(w, http.StatusNotFound, notFoundMessage)
		} else {
			status = "error"
			h.logger.ErrorLogger.Error("failed to delete advertisement", utils.Err(err))
			utils.RespondWithErrorJSON(w, http.StatusInternalServerError, "internal server error")
		}
		span.RecordError(err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
