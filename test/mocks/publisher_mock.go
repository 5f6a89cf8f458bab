package mocks

import (
	"context"
	"sync"

	"github.com/clinicdesk/clinic-service/internal/core/ports"
)

// MockAppointmentEventPublisher implements ports.AppointmentEventPublisher
// for testing the outbox relay without a real RabbitMQ connection.
type MockAppointmentEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []ports.AppointmentEvent
	PublishCallCount int

	// Error injection for testing error scenarios
	PublishError error
}

var _ ports.AppointmentEventPublisher = (*MockAppointmentEventPublisher)(nil)

func NewMockAppointmentEventPublisher() *MockAppointmentEventPublisher {
	return &MockAppointmentEventPublisher{
		PublishedEvents: make([]ports.AppointmentEvent, 0),
	}
}

func (m *MockAppointmentEventPublisher) PublishAppointmentEvent(ctx context.Context, evt ports.AppointmentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// Events returns a copy of the published events for verification.
func (m *MockAppointmentEventPublisher) Events() []ports.AppointmentEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.AppointmentEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}
