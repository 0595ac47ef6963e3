package ticketing

import (
	"context"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticketing.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticketing.Event), args.Error(1)
}

func (m *MockEventRepository) FindBySlug(ctx context.Context, slug string) (*ticketing.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticketing.Event), args.Error(1)
}

func (m *MockEventRepository) FindByTitle(ctx context.Context, title string) ([]ticketing.Event, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticketing.Event), args.Error(1)
}

func (m *MockEventRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ticketing.Event, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]ticketing.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticketing.Event, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ticketing.Event), args.Error(1)
}

func (m *MockEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Save(ctx context.Context, event *ticketing.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) SaveWithLock(ctx context.Context, event *ticketing.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChatRepository is a mock implementation of ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) FindByEventAndPasscode(ctx context.Context, eventID uuid.UUID, passcode string) (*ticketing.ChatThread, error) {
	args := m.Called(ctx, eventID, passcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticketing.ChatThread), args.Error(1)
}

func (m *MockChatRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]ticketing.ChatThread, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]ticketing.ChatThread), args.Error(1)
}

func (m *MockChatRepository) Save(ctx context.Context, thread *ticketing.ChatThread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockChatRepository) SaveWithLock(ctx context.Context, thread *ticketing.ChatThread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockChatRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// =============================================================================
// Mock Ports
// =============================================================================

// MockFlierStorage is a mock implementation of FlierStorage
type MockFlierStorage struct {
	mock.Mock
}

func (m *MockFlierStorage) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockFlierStorage) Delete(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

// MockQRCodeGenerator is a mock implementation of QRCodeGenerator
type MockQRCodeGenerator struct {
	mock.Mock
}

func (m *MockQRCodeGenerator) GeneratePNG(payload string) ([]byte, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockTicketMailer is a mock implementation of TicketMailer
type MockTicketMailer struct {
	mock.Mock
}

func (m *MockTicketMailer) SendTicket(ctx context.Context, email TicketEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockWebhookNotifier is a mock implementation of WebhookNotifier
type MockWebhookNotifier struct {
	mock.Mock
}

func (m *MockWebhookNotifier) NotifyRegistrationClosed(ctx context.Context, eventTitle string, attendees []ticketing.Attendee) error {
	args := m.Called(ctx, eventTitle, attendees)
	return args.Error(0)
}
