package events

import (
	EventBus "github.com/asaskevich/EventBus"
)

const (
	TopicSwapCreated       = "swap:created"
	TopicSwapStatusChanged = "swap:status_changed"
	TopicProductDeleted    = "product:deleted"
)

type SwapCreated struct {
	RequestID   string
	ProductID   string
	RequestedBy string
	Mode        string
}

type SwapStatusChanged struct {
	RequestID string
	ProductID string
	From      string
	To        string
}

type ProductDeleted struct {
	ProductID       string
	RemovedRequests int
	UnlikedBy       int
}

// Publisher is the subset of EventBus.Bus the ledgers publish through.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

func NewBus() EventBus.Bus {
	return EventBus.New()
}
