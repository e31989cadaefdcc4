package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/repo"
	"trip-planner-service/internal/service"
)

// Hand-written test doubles shared by the service tests. Each method is a
// function field — set only the ones your test needs; an unset method that
// gets called panics, which is exactly the signal you want from a test.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, params)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockDailyLogRepo struct {
	createBatch  func(ctx context.Context, logs []domain.DailyLog) ([]domain.DailyLog, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.DailyLog, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)
}

func (m *mockDailyLogRepo) CreateBatch(ctx context.Context, logs []domain.DailyLog) ([]domain.DailyLog, error) {
	return m.createBatch(ctx, logs)
}
func (m *mockDailyLogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error) {
	return m.getByID(ctx, id)
}
func (m *mockDailyLogRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.DailyLogRepo = (*mockDailyLogRepo)(nil)

type mockLogEntryRepo struct {
	create              func(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error)
	delete              func(ctx context.Context, dailyLogID, entryID uuid.UUID) error
	listByDailyLogID    func(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error)
	listLogsWithEntries func(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.DailyLog, error)
}

func (m *mockLogEntryRepo) Create(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error) {
	return m.create(ctx, entry)
}
func (m *mockLogEntryRepo) Delete(ctx context.Context, dailyLogID, entryID uuid.UUID) error {
	return m.delete(ctx, dailyLogID, entryID)
}
func (m *mockLogEntryRepo) ListByDailyLogID(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error) {
	return m.listByDailyLogID(ctx, dailyLogID)
}
func (m *mockLogEntryRepo) ListLogsWithEntries(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.DailyLog, error) {
	return m.listLogsWithEntries(ctx, tripID, from, to)
}

var _ repo.LogEntryRepo = (*mockLogEntryRepo)(nil)

type mockRouteProvider struct {
	getRoute func(ctx context.Context, origin, dest domain.Location) (domain.RouteSegment, error)
}

func (m *mockRouteProvider) GetRoute(ctx context.Context, origin, dest domain.Location) (domain.RouteSegment, error) {
	return m.getRoute(ctx, origin, dest)
}

var _ service.RouteProvider = (*mockRouteProvider)(nil)

type mockGeocoder struct {
	geocode func(ctx context.Context, address string) domain.Location
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) domain.Location {
	return m.geocode(ctx, address)
}

var _ service.Geocoder = (*mockGeocoder)(nil)
