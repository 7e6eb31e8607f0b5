package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"adv-service/internal/domain"
	"adv-service/internal/infrastructure/metrics"
	"adv-service/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrInvalidID   = errors.New("invalid advertisement ID")
	ErrAdvNotFound = errors.New("advertisement not found")
)

type AdvService interface {
	GetAdvByID(ctx context.Context, id int64) (*domain.Advertisement, error)
	CreateAdv(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error)
	UpdateAdv(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error)
	DeleteAdv(ctx context.Context, id int64) error
}

type advService struct {
	repository repository.AdvRepository
	metrics    *metrics.ServiceMetrics
	tracer     trace.Tracer
}

func NewAdvService(repository repository.AdvRepository, metrics *metrics.ServiceMetrics) AdvService {
	tracer := otel.Tracer("adv-service/service")
	return &advService{
		repository: repository,
		metrics:    metrics,
		tracer:     tracer,
	}
}

func (s *advService) GetAdvByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	ctx, span := s.tracer.Start(ctx, "GetAdvByID")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		s.metrics.MethodCount.WithLabelValues("GetAdvByID", status).Inc()
		s.metrics.MethodDuration.WithLabelValues("GetAdvByID", status).Observe(duration)
	}()

	adv, err := s.repository.GetAdvByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			status = "not_found"
			return nil, ErrAdvNotFound
		}
		status = "error"
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("adv.id", id))
	return adv, nil
}

func (s *advService) CreateAdv(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error) {
	ctx, span := s.tracer.Start(ctx, "CreateAdv")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		s.metrics.MethodCount.WithLabelValues("CreateAdv", status).Inc()
		s.metrics.MethodDuration.WithLabelValues("CreateAdv", status).Observe(duration)
	}()

	createdAdv, err := s.repository.CreateAdv(ctx, fields)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("adv.id", createdAdv.ID),
		attribute.String("adv.header", createdAdv.Header),
	)
	return createdAdv, nil
}

func (s *advService) UpdateAdv(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	ctx, span := s.tracer.Start(ctx, "UpdateAdv")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		s.metrics.MethodCount.WithLabelValues("UpdateAdv", status).Inc()
		s.metrics.MethodDuration.WithLabelValues("UpdateAdv", status).Observe(duration)
	}()

	updatedAdv, err := s.repository.UpdateAdv(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			status = "not_found"
			return nil, ErrAdvNotFound
		}
		status = "error"
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("adv.id", updatedAdv.ID),
		attribute.Int("adv.patch_fields", len(patch)),
	)
	return updatedAdv, nil
}

func (s *advService) DeleteAdv(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}

	ctx, span := s.tracer.Start(ctx, "DeleteAdv")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		s.metrics.MethodCount.WithLabelValues("DeleteAdv", status).Inc()
		s.metrics.MethodDuration.WithLabelValues("DeleteAdv", status).Observe(duration)
	}()

	err := s.repository.DeleteAdv(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			status = "not_found"
			return ErrAdvNotFound
		}
		status = "error"
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int64("adv.id", id))
	return nil
}
