package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/coordinator"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/dto"
)

// MockEventStore is a mock implementation of remote.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) FetchAll(ctx context.Context) ([]domain.EventRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func (m *MockEventStore) GetEvent(ctx context.Context, id string) (*domain.EventRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventRecord), args.Error(1)
}

func (m *MockEventStore) InsertEvent(ctx context.Context, record *domain.EventRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEventStore) UpdateEvent(ctx context.Context, organizerID string, record *domain.EventRecord) (int64, error) {
	args := m.Called(ctx, organizerID, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventStore) DeleteEvent(ctx context.Context, organizerID, id string) (int64, error) {
	args := m.Called(ctx, organizerID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventStore) InsertRegistration(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockEventStore) RegistrationExists(ctx context.Context, eventID, userID string) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventStore) SumTickets(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockEventStore) EventsByOrganizer(ctx context.Context, organizerID string) ([]domain.EventRecord, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func (m *MockEventStore) EventsByRegistrant(ctx context.Context, userID string) ([]domain.EventRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func (m *MockEventStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventStore) Close() {
	m.Called()
}

// MockTicketCache is a mock implementation of TicketCache
type MockTicketCache struct {
	mock.Mock
}

func (m *MockTicketCache) GetTotal(ctx context.Context, eventID string) (int, bool) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Bool(1)
}

func (m *MockTicketCache) SetTotal(ctx context.Context, eventID string, total int) {
	m.Called(ctx, eventID, total)
}

func (m *MockTicketCache) Invalidate(ctx context.Context, eventID string) {
	m.Called(ctx, eventID)
}

// fakeView is a canned CatalogView
type fakeView struct {
	status  coordinator.Status
	errMsg  string
	records []domain.EventRecord
}

func (v *fakeView) CurrentView() coordinator.View {
	return coordinator.View{Status: v.status, VisibleRecords: v.records, Err: v.errMsg}
}

func (v *fakeView) Snapshot() []domain.EventRecord { return v.records }

func (v *fakeView) Get(id string) (domain.EventRecord, bool) {
	for _, r := range v.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.EventRecord{}, false
}

func intPtr(n int) *int { return &n }

func mirrorRecord(id, title, category string) domain.EventRecord {
	return domain.EventRecord{
		ID:          id,
		Title:       title,
		Description: "about " + title,
		Date:        time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:    "Berlin",
		Category:    category,
		Price:       10,
		OrganizerID: "org-1",
	}
}

func readyView(records ...domain.EventRecord) *fakeView {
	return &fakeView{status: coordinator.StatusReady, records: records}
}

func TestCatalogService_Browse_FiltersMirror(t *testing.T) {
	view := readyView(
		mirrorRecord("1", "Intro to Go", "Workshop"),
		mirrorRecord("2", "Jazz Night", "Music Concert"),
	)
	service := NewCatalogService(new(MockEventStore), view, nil, zap.NewNop())

	resp := service.Browse(&dto.BrowseEventsRequest{Category: "workshop"})

	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "1", resp.Events[0].ID)
}

func TestCatalogService_Browse_AppliesDefaultImage(t *testing.T) {
	plain := mirrorRecord("1", "Intro to Go", "Workshop")
	pictured := mirrorRecord("2", "Jazz Night", "Music Concert")
	pictured.ImageURL = "https://example.com/jazz.png"

	service := NewCatalogService(new(MockEventStore), readyView(plain, pictured), nil, zap.NewNop())

	resp := service.Browse(&dto.BrowseEventsRequest{})

	assert.Equal(t, domain.DefaultImageURL, resp.Events[0].ImageURL)
	assert.Equal(t, "https://example.com/jazz.png", resp.Events[1].ImageURL)
}

func TestCatalogService_Browse_SurfacesLoadError(t *testing.T) {
	view := &fakeView{status: coordinator.StatusFailed, errMsg: "network error"}
	service := NewCatalogService(new(MockEventStore), view, nil, zap.NewNop())

	resp := service.Browse(&dto.BrowseEventsRequest{})

	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "network error", resp.Error)
	assert.Empty(t, resp.Events)
}

func TestCatalogService_GetEvent_ServedFromMirror(t *testing.T) {
	mockStore := new(MockEventStore)
	view := readyView(mirrorRecord("1", "Tech Talk", "Conference"))
	service := NewCatalogService(mockStore, view, nil, zap.NewNop())

	event, err := service.GetEvent(context.Background(), "1")

	assert.NoError(t, err)
	assert.Equal(t, "Tech Talk", event.Title)
	mockStore.AssertNotCalled(t, "GetEvent")
}

func TestCatalogService_GetEvent_FallsBackToStore(t *testing.T) {
	mockStore := new(MockEventStore)
	record := mirrorRecord("9", "Not Mirrored Yet", "Other")
	mockStore.On("GetEvent", mock.Anything, "9").Return(&record, nil)

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	event, err := service.GetEvent(context.Background(), "9")

	assert.NoError(t, err)
	assert.Equal(t, "Not Mirrored Yet", event.Title)
	mockStore.AssertExpectations(t)
}

func TestCatalogService_GetEvent_NotFound(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("GetEvent", mock.Anything, "missing").Return(nil, nil)

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	event, err := service.GetEvent(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, event)
}

func TestCatalogService_CreateEvent_Success(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("InsertEvent", mock.Anything, mock.AnythingOfType("*domain.EventRecord")).Return(nil)

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	event, err := service.CreateEvent(context.Background(), "user-1", &dto.CreateEventRequest{
		Title:       "Tech Talk",
		Description: "Distributed systems",
		Date:        "2025-06-01T18:00:00Z",
		Location:    "Berlin",
		Category:    "Conference",
		Price:       25,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "user-1", event.OrganizerID)
	assert.Equal(t, event.CreatedAt, event.UpdatedAt)
	mockStore.AssertExpectations(t)
}

func TestCatalogService_CreateEvent_InvalidDate(t *testing.T) {
	mockStore := new(MockEventStore)
	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	event, err := service.CreateEvent(context.Background(), "user-1", &dto.CreateEventRequest{
		Title:       "Tech Talk",
		Description: "Distributed systems",
		Date:        "June 1st",
		Location:    "Berlin",
		Category:    "Conference",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, event)
	mockStore.AssertNotCalled(t, "InsertEvent")
}

func TestCatalogService_UpdateEvent_NotOwnerLooksLikeNotFound(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("UpdateEvent", mock.Anything, "intruder", mock.Anything).Return(int64(0), nil)

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	event, err := service.UpdateEvent(context.Background(), "intruder", "1", &dto.UpdateEventRequest{
		Title:       "Hijacked",
		Description: "x",
		Date:        "2025-06-01T18:00:00Z",
		Location:    "x",
		Category:    "Other",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, event)
}

func TestCatalogService_DeleteEvent_Success(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("DeleteEvent", mock.Anything, "org-1", "1").Return(int64(1), nil)

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	assert.NoError(t, service.DeleteEvent(context.Background(), "org-1", "1"))
	mockStore.AssertExpectations(t)
}

func TestCatalogService_Register_Success(t *testing.T) {
	record := mirrorRecord("1", "Tech Talk", "Conference")
	record.MaxAttendees = intPtr(100)

	mockStore := new(MockEventStore)
	mockStore.On("RegistrationExists", mock.Anything, "1", "user-1").Return(false, nil)
	mockStore.On("SumTickets", mock.Anything, "1").Return(10, nil)
	mockStore.On("InsertRegistration", mock.Anything, mock.AnythingOfType("*domain.Registration")).Return(nil)

	mockCache := new(MockTicketCache)
	mockCache.On("GetTotal", mock.Anything, "1").Return(0, false)
	mockCache.On("SetTotal", mock.Anything, "1", 10)
	mockCache.On("Invalidate", mock.Anything, "1")

	service := NewCatalogService(mockStore, readyView(record), mockCache, zap.NewNop())

	registration, err := service.Register(context.Background(), "user-1", "1", &dto.RegisterRequest{TicketQuantity: 2})

	assert.NoError(t, err)
	assert.Equal(t, 2, registration.TicketQuantity)
	assert.NotEmpty(t, registration.ID)
	mockStore.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCatalogService_Register_Duplicate(t *testing.T) {
	record := mirrorRecord("1", "Tech Talk", "Conference")

	mockStore := new(MockEventStore)
	mockStore.On("RegistrationExists", mock.Anything, "1", "user-1").Return(true, nil)

	service := NewCatalogService(mockStore, readyView(record), nil, zap.NewNop())

	registration, err := service.Register(context.Background(), "user-1", "1", &dto.RegisterRequest{TicketQuantity: 1})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Nil(t, registration)
	mockStore.AssertNotCalled(t, "InsertRegistration")
}

func TestCatalogService_Register_CapacityExceeded(t *testing.T) {
	record := mirrorRecord("1", "Tech Talk", "Conference")
	record.MaxAttendees = intPtr(10)

	mockStore := new(MockEventStore)
	mockStore.On("RegistrationExists", mock.Anything, "1", "user-1").Return(false, nil)
	mockStore.On("SumTickets", mock.Anything, "1").Return(9, nil)

	service := NewCatalogService(mockStore, readyView(record), nil, zap.NewNop())

	registration, err := service.Register(context.Background(), "user-1", "1", &dto.RegisterRequest{TicketQuantity: 2})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, registration)
	mockStore.AssertNotCalled(t, "InsertRegistration")
}

func TestCatalogService_Register_UnlimitedCapacitySkipsTicketSum(t *testing.T) {
	record := mirrorRecord("1", "Tech Talk", "Conference")

	mockStore := new(MockEventStore)
	mockStore.On("RegistrationExists", mock.Anything, "1", "user-1").Return(false, nil)
	mockStore.On("InsertRegistration", mock.Anything, mock.AnythingOfType("*domain.Registration")).Return(nil)

	service := NewCatalogService(mockStore, readyView(record), nil, zap.NewNop())

	registration, err := service.Register(context.Background(), "user-1", "1", &dto.RegisterRequest{TicketQuantity: 5})

	assert.NoError(t, err)
	assert.NotNil(t, registration)
	mockStore.AssertNotCalled(t, "SumTickets")
}

func TestCatalogService_Register_CacheHitSkipsStoreSum(t *testing.T) {
	record := mirrorRecord("1", "Tech Talk", "Conference")
	record.MaxAttendees = intPtr(100)

	mockStore := new(MockEventStore)
	mockStore.On("RegistrationExists", mock.Anything, "1", "user-1").Return(false, nil)
	mockStore.On("InsertRegistration", mock.Anything, mock.AnythingOfType("*domain.Registration")).Return(nil)

	mockCache := new(MockTicketCache)
	mockCache.On("GetTotal", mock.Anything, "1").Return(50, true)
	mockCache.On("Invalidate", mock.Anything, "1")

	service := NewCatalogService(mockStore, readyView(record), mockCache, zap.NewNop())

	_, err := service.Register(context.Background(), "user-1", "1", &dto.RegisterRequest{TicketQuantity: 2})

	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "SumTickets")
	mockCache.AssertExpectations(t)
}

func TestCatalogService_MyEvents(t *testing.T) {
	created := []domain.EventRecord{mirrorRecord("1", "Mine", "Workshop")}
	registered := []domain.EventRecord{mirrorRecord("2", "Attending", "Conference")}

	mockStore := new(MockEventStore)
	mockStore.On("EventsByOrganizer", mock.Anything, "user-1").Return(created, nil)
	mockStore.On("EventsByRegistrant", mock.Anything, "user-1").Return(registered, nil)

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	resp, err := service.MyEvents(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, resp.Created, 1)
	assert.Len(t, resp.Registered, 1)
	mockStore.AssertExpectations(t)
}

func TestCatalogService_MyEvents_StoreError(t *testing.T) {
	mockStore := new(MockEventStore)
	mockStore.On("EventsByOrganizer", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))

	service := NewCatalogService(mockStore, readyView(), nil, zap.NewNop())

	resp, err := service.MyEvents(context.Background(), "user-1")

	assert.Error(t, err)
	assert.Nil(t, resp)
}
