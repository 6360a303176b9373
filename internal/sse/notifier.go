package sse

import "time"

// CatalogNotifier is the interface services use to announce catalog changes.
type CatalogNotifier interface {
	NotifyCategoryCreated()
	NotifyProductCreated()
	NotifyProductUpdated(productID int)
	NotifyImagesChanged(productID int)
}

// HubNotifier implements CatalogNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyCategoryCreated() {
	n.broadcast(EventCategoryCreated, 0)
}

func (n *HubNotifier) NotifyProductCreated() {
	n.broadcast(EventProductCreated, 0)
}

func (n *HubNotifier) NotifyProductUpdated(productID int) {
	n.broadcast(EventProductUpdated, productID)
}

func (n *HubNotifier) NotifyImagesChanged(productID int) {
	n.broadcast(EventImagesChanged, productID)
}

func (n *HubNotifier) broadcast(eventType EventType, productID int) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&CatalogEvent{
		Event:     eventType,
		ProductID: productID,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyCategoryCreated()     {}
func (n *NopNotifier) NotifyProductCreated()      {}
func (n *NopNotifier) NotifyProductUpdated(_ int) {}
func (n *NopNotifier) NotifyImagesChanged(_ int)  {}
