package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"adv-service/internal/domain"
	"adv-service/internal/infrastructure/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceMetrics = metrics.NewServiceMetrics()

type fakeRepo struct {
	getFn    func(ctx context.Context, id int64) (*domain.Advertisement, error)
	createFn func(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error)
	updateFn func(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeRepo) GetAdvByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	return f.getFn(ctx, id)
}

func (f *fakeRepo) CreateAdv(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error) {
	return f.createFn(ctx, fields)
}

func (f *fakeRepo) UpdateAdv(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error) {
	return f.updateFn(ctx, id, patch)
}

func (f *fakeRepo) DeleteAdv(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func sampleAdv() *domain.Advertisement {
	return &domain.Advertisement{
		ID:          1,
		Header:      "h1",
		Description: "d1",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Owner:       "o1",
	}
}

func TestGetAdvByID(t *testing.T) {
	svc := NewAdvService(&fakeRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Advertisement, error) {
			return sampleAdv(), nil
		},
	}, serviceMetrics)

	adv, err := svc.GetAdvByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, sampleAdv(), adv)
}

func TestGetAdvByID_MapsNoRowsToNotFound(t *testing.T) {
	svc := NewAdvService(&fakeRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Advertisement, error) {
			return nil, sql.ErrNoRows
		},
	}, serviceMetrics)

	_, err := svc.GetAdvByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAdvNotFound)
}

func TestGetAdvByID_InvalidID(t *testing.T) {
	svc := NewAdvService(&fakeRepo{}, serviceMetrics)

	_, err := svc.GetAdvByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGetAdvByID_PassesThroughUnexpectedErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewAdvService(&fakeRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Advertisement, error) {
			return nil, boom
		},
	}, serviceMetrics)

	_, err := svc.GetAdvByID(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestCreateAdv(t *testing.T) {
	var gotFields domain.AdvFields
	svc := NewAdvService(&fakeRepo{
		createFn: func(ctx context.Context, fields domain.AdvFields) (*domain.Advertisement, error) {
			gotFields = fields
			return sampleAdv(), nil
		},
	}, serviceMetrics)

	adv, err := svc.CreateAdv(context.Background(), domain.AdvFields{Header: "h1", Description: "d1", Owner: "o1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), adv.ID)
	assert.Equal(t, domain.AdvFields{Header: "h1", Description: "d1", Owner: "o1"}, gotFields)
}

func TestUpdateAdv_MapsNoRowsToNotFound(t *testing.T) {
	svc := NewAdvService(&fakeRepo{
		updateFn: func(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error) {
			return nil, sql.ErrNoRows
		},
	}, serviceMetrics)

	_, err := svc.UpdateAdv(context.Background(), 42, domain.AdvPatch{domain.FieldHeader: "h2"})
	assert.ErrorIs(t, err, ErrAdvNotFound)
}

func TestUpdateAdv_ForwardsPatchUnchanged(t *testing.T) {
	var gotPatch domain.AdvPatch
	svc := NewAdvService(&fakeRepo{
		updateFn: func(ctx context.Context, id int64, patch domain.AdvPatch) (*domain.Advertisement, error) {
			gotPatch = patch
			return sampleAdv(), nil
		},
	}, serviceMetrics)

	patch := domain.AdvPatch{domain.FieldOwner: "o2"}
	_, err := svc.UpdateAdv(context.Background(), 1, patch)
	require.NoError(t, err)
	assert.Equal(t, patch, gotPatch)
}

func TestUpdateAdv_InvalidID(t *testing.T) {
	svc := NewAdvService(&fakeRepo{}, serviceMetrics)

	_, err := svc.UpdateAdv(context.Background(), -1, domain.AdvPatch{})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestDeleteAdv(t *testing.T) {
	var gotID int64
	svc := NewAdvService(&fakeRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			gotID = id
			return nil
		},
	}, serviceMetrics)

	require.NoError(t, svc.DeleteAdv(context.Background(), 7))
	assert.Equal(t, int64(7), gotID)
}

func TestDeleteAdv_MapsNoRowsToNotFound(t *testing.T) {
	svc := NewAdvService(&fakeRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return sql.ErrNoRows
		},
	}, serviceMetrics)

	assert.ErrorIs(t, svc.DeleteAdv(context.Background(), 42), ErrAdvNotFound)
}

func TestDeleteAdv_InvalidID(t *testing.T) {
	svc := NewAdvService(&fakeRepo{}, serviceMetrics)

	assert.ErrorIs(t, svc.DeleteAdv(context.Background(), 0), ErrInvalidID)
}
