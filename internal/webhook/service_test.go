package webhook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/event"
	"github.com/ironloft/gymboard/internal/sync"
)

// fakeManager records applied events for one board.
type fakeManager struct {
	entityType domain.EntityType
	boardID    int64
	applied    []domain.WebhookEvent
	applyErr   error
}

func (f *fakeManager) EntityType() domain.EntityType { return f.entityType }
func (f *fakeManager) BoardID() int64                { return f.boardID }

func (f *fakeManager) SyncOne(ctx context.Context, localID string) (domain.SyncResult, error) {
	return domain.SyncResult{}, nil
}

func (f *fakeManager) SyncAllPending(ctx context.Context) (*domain.SyncReport, error) {
	return &domain.SyncReport{}, nil
}

func (f *fakeManager) FullSyncFromRemote(ctx context.Context) (*domain.SyncReport, error) {
	return &domain.SyncReport{}, nil
}

func (f *fakeManager) PerformBidirectionalSync(ctx context.Context) (*domain.SyncReport, error) {
	return &domain.SyncReport{}, nil
}

func (f *fakeManager) ApplyRemoteEvent(ctx context.Context, evt domain.WebhookEvent) error {
	f.applied = append(f.applied, evt)
	return f.applyErr
}

func (f *fakeManager) Status(ctx context.Context) (map[domain.SyncStatus]int, error) {
	return nil, nil
}

// MockWebhookLog implements repository.WebhookLog for testing
type MockWebhookLog struct {
	mock.Mock
}

func (m *MockWebhookLog) Insert(ctx context.Context, eventType string, payload []byte) (int64, error) {
	args := m.Called(ctx, eventType, payload)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWebhookLog) UpdateStatus(ctx context.Context, id int64, status domain.WebhookStatus, errMsg string) error {
	args := m.Called(ctx, id, status, errMsg)
	return args.Error(0)
}

func newTestService(t *testing.T, manager *fakeManager, audit *MockWebhookLog) Service {
	t.Helper()
	registry, err := sync.NewRegistry(manager)
	require.NoError(t, err)
	return NewService(registry, audit, event.NewMemoryBus())
}

func TestProcess_RoutesEventToBoardManager(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111}
	audit := new(MockWebhookLog)
	audit.On("Insert", mock.Anything, "update_name", mock.Anything).Return(int64(5), nil)
	audit.On("UpdateStatus", mock.Anything, int64(5), domain.WebhookStatusProcessed, "").Return(nil)
	svc := newTestService(t, manager, audit)

	payload := []byte(`{"event":{"type":"update_name","boardId":111,"pulseId":42,"pulseName":"Renamed"}}`)
	err := svc.Process(context.Background(), payload)

	require.NoError(t, err)
	require.Len(t, manager.applied, 1)
	assert.Equal(t, domain.EventItemNameChanged, manager.applied[0].Type)
	assert.Equal(t, int64(42), manager.applied[0].ItemID)
	assert.False(t, manager.applied[0].ReceivedAt.IsZero())
	audit.AssertExpectations(t)
}

func TestProcess_UnknownBoardIgnored(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111}
	audit := new(MockWebhookLog)
	audit.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(int64(5), nil)
	audit.On("UpdateStatus", mock.Anything, int64(5), domain.WebhookStatusProcessed, "").Return(nil)
	svc := newTestService(t, manager, audit)

	// Events for boards this deployment does not mirror are logged and
	// dropped, never surfaced as processing failures.
	payload := []byte(`{"event":{"type":"update_name","boardId":999,"pulseId":42}}`)
	err := svc.Process(context.Background(), payload)

	require.NoError(t, err)
	assert.Empty(t, manager.applied)
	audit.AssertExpectations(t)
}

func TestProcess_UnparseablePayloadFails(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111}
	svc := newTestService(t, manager, new(MockWebhookLog))

	assert.Error(t, svc.Process(context.Background(), []byte(`not json`)))
	assert.Error(t, svc.Process(context.Background(), []byte(`{"no_event": true}`)))
}

func TestProcess_SchemaInvalidEventFails(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111}
	svc := newTestService(t, manager, new(MockWebhookLog))

	// boardId is required by the event schema.
	payload := []byte(`{"event":{"type":"update_name","pulseId":42}}`)
	err := svc.Process(context.Background(), payload)

	assert.Error(t, err)
	assert.Empty(t, manager.applied)
}

func TestProcess_UnknownEventTypeStillRouted(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111}
	audit := new(MockWebhookLog)
	audit.On("Insert", mock.Anything, "mystery_event", mock.Anything).Return(int64(5), nil)
	audit.On("UpdateStatus", mock.Anything, int64(5), domain.WebhookStatusProcessed, "").Return(nil)
	svc := newTestService(t, manager, audit)

	// The platform adds event types over time; unknown ones pass the schema
	// and the manager decides what to do with them.
	payload := []byte(`{"event":{"type":"mystery_event","boardId":111}}`)
	err := svc.Process(context.Background(), payload)

	require.NoError(t, err)
	assert.Len(t, manager.applied, 1)
}

func TestProcess_AuditFailureDoesNotDropEvent(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111}
	audit := new(MockWebhookLog)
	audit.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	svc := newTestService(t, manager, audit)

	payload := []byte(`{"event":{"type":"update_name","boardId":111,"pulseId":42,"pulseName":"Renamed"}}`)
	err := svc.Process(context.Background(), payload)

	require.NoError(t, err)
	assert.Len(t, manager.applied, 1)
	// The failed insert means there is no audit row to update.
	audit.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_ApplyFailureRecordedInAudit(t *testing.T) {
	manager := &fakeManager{entityType: domain.EntityMember, boardID: 111, applyErr: domain.ErrRemoteUnavailable}
	audit := new(MockWebhookLog)
	audit.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(int64(7), nil)
	audit.On("UpdateStatus", mock.Anything, int64(7), domain.WebhookStatusError, mock.Anything).Return(nil)
	svc := newTestService(t, manager, audit)

	payload := []byte(`{"event":{"type":"update_name","boardId":111,"pulseId":42}}`)
	err := svc.Process(context.Background(), payload)

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	audit.AssertExpectations(t)
}

func TestParseChallenge(t *testing.T) {
	challenge, ok := ParseChallenge([]byte(`{"challenge":"abc123"}`))
	require.True(t, ok)
	assert.Equal(t, "abc123", challenge)

	_, ok = ParseChallenge([]byte(`{"event":{"type":"update_name"}}`))
	assert.False(t, ok)

	_, ok = ParseChallenge([]byte(`garbage`))
	assert.False(t, ok)
}
