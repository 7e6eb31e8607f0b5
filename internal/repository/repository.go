package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"adv-service/internal/domain"
	"adv-service/internal/infrastructure/metrics"
	"adv-service/internal/scope"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type AdvRepository interface {
	GetAdvByID(ctx context.Context, id int64) (*domain.Advertisement, error)
	CreateAdv(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error)
	UpdateAdv(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error)
	DeleteAdv(ctx context.Context, id int64) error
}

type postgresAdvRepository struct {
	db      *sql.DB
	metrics *metrics.RepositoryMetrics
	tracer  trace.Tracer
}

func NewPostgresAdvRepository(db *sql.DB, metrics *metrics.RepositoryMetrics) AdvRepository {
	tracer := otel.Tracer("adv-service/repository")
	return &postgresAdvRepository{
		db:      db,
		metrics: metrics,
		tracer:  tracer,
	}
}

const sqlSelectAdv = `
	SELECT id, header, description, created_at, owner
	FROM app_advs
	WHERE id = $1`

const sqlInsertAdv = `
	INSERT INTO app_advs (header, description, owner)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`

const sqlDeleteAdv = `
	DELETE FROM app_advs WHERE id = $1`

// querier returns the request scope's connection when one is attached to
// ctx, falling back to the shared pool otherwise.
func (r *postgresAdvRepository) querier(ctx context.Context) scope.Querier {
	if s, ok := scope.FromContext(ctx); ok {
		return s.Querier()
	}
	return r.db
}

func (r *postgresAdvRepository) GetAdvByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	ctx, span := r.tracer.Start(ctx, "Repository GetAdvByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("adv.id", id))

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.QueryCount.WithLabelValues("GetAdvByID", status).Inc()
		r.metrics.QueryDuration.WithLabelValues("GetAdvByID", status).Observe(duration)
	}()

	adv := &domain.Advertisement{}
	err := r.querier(ctx).QueryRowContext(ctx, sqlSelectAdv, id).Scan(
		&adv.ID,
		&adv.Header,
		&adv.Description,
		&adv.CreatedAt,
		&adv.Owner,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			status = "not_found"
			return nil, err
		}
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch advertisement: %w", err)
	}

	return adv, nil
}

func (r *postgresAdvRepository) CreateAdv(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error) {
	ctx, span := r.tracer.Start(ctx, "Repository CreateAdv")
	defer span.End()

	span.SetAttributes(
		attribute.String("adv.header", fields.Header),
		attribute.String("adv.owner", fields.Owner),
	)

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.QueryCount.WithLabelValues("CreateAdv", status).Inc()
		r.metrics.QueryDuration.WithLabelValues("CreateAdv", status).Observe(duration)
	}()

	adv := &domain.Advertisement{
		Header:      fields.Header,
		Description: fields.Description,
		Owner:       fields.Owner,
	}

	// id and created_at are assigned server-side at insert time.
	err := r.querier(ctx).QueryRowContext(ctx, sqlInsertAdv,
		fields.Header, fields.Description, fields.Owner).Scan(&adv.ID, &adv.CreatedAt)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to insert advertisement: %w", err)
	}

	span.SetAttributes(attribute.Int64("adv.id", adv.ID))
	return adv, nil
}

func (r *postgresAdvRepository) UpdateAdv(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error) {
	ctx, span := r.tracer.Start(ctx, "Repository UpdateAdv")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("adv.id", id),
		attribute.Int("adv.patch_fields", len(patch)),
	)

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.QueryCount.WithLabelValues("UpdateAdv", status).Inc()
		r.metrics.QueryDuration.WithLabelValues("UpdateAdv", status).Observe(duration)
	}()

	// Only columns whose keys were present in the payload are written; an
	// empty patch degenerates to a plain read, issued inline so the
	// operation is observed once, under its own name.
	if len(patch) == 0 {
		adv := &domain.Advertisement{}
		err := r.querier(ctx).QueryRowContext(ctx, sqlSelectAdv, id).Scan(
			&adv.ID,
			&adv.Header,
			&adv.Description,
			&adv.CreatedAt,
			&adv.Owner,
		)
		if err != nil {
			if err == sql.ErrNoRows {
				status = "not_found"
				return nil, err
			}
			status = "error"
			span.RecordError(err)
			return nil, fmt.Errorf("failed to fetch advertisement: %w", err)
		}
		return adv, nil
	}

	setClauses := make([]string, 0, len(patch))
	args := make([]interface{}, 0, len(patch)+1)
	argIdx := 1

	for _, field := range []string{domain.FieldHeader, domain.FieldDescription, domain.FieldOwner} {
		if !patch.Has(field) {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argIdx))
		args = append(args, patch[field])
		argIdx++
	}
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE app_advs
		SET %s
		WHERE id = $%d
		RETURNING id, header, description, created_at, owner`,
		strings.Join(setClauses, ", "), argIdx)

	adv := &domain.Advertisement{}
	err := r.querier(ctx).QueryRowContext(ctx, query, args...).Scan(
		&adv.ID,
		&adv.Header,
		&adv.Description,
		&adv.CreatedAt,
		&adv.Owner,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			status = "not_found"
			return nil, err
		}
		status = "error"
		span.RecordError(err)
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}

	return adv, nil
}

func (r *postgresAdvRepository) DeleteAdv(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "Repository DeleteAdv")
	defer span.End()

	span.SetAttributes(attribute.Int64("adv.id", id))

	startTime := time.Now()
	status := "success"

	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.QueryCount.WithLabelValues("DeleteAdv", status).Inc()
		r.metrics.QueryDuration.WithLabelValues("DeleteAdv", status).Observe(duration)
	}()

	result, err := r.querier(ctx).ExecContext(ctx, sqlDeleteAdv, id)
	if err != nil {
		status = "error"
		span.RecordError(err)
		return fmt.Errorf("failed to delete advertisement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		status = "error"
		span.RecordError(err)
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}

	if rowsAffected == 0 {
		status = "not_found"
		return sql.ErrNoRows
	}

	return nil
}
