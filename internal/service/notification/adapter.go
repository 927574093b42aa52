package notification

import (
	"context"
	"employee-api/internal/notification"
	"employee-api/internal/service"
	"fmt"
)

// ServiceAdapter adapts the notification client to the service layer interface
type ServiceAdapter struct {
	client notification.Notifier
}

// NewServiceAdapter creates a new notification service adapter
func NewServiceAdapter(client notification.Notifier) *ServiceAdapter {
	return &ServiceAdapter{
		client: client,
	}
}

// NotifyEmployeeChange converts a service change into a webhook notification
func (a *ServiceAdapter) NotifyEmployeeChange(ctx context.Context, change service.EmployeeChange) error {
	n := notification.Notification{
		Event:      mapEvent(change.Type),
		Level:      mapNotificationLevel(change.Type),
		EmployeeID: change.EmployeeID,
		Message:    fmt.Sprintf("Employee %d %s", change.EmployeeID, change.Type),
		Metadata:   map[string]string{"change": string(change.Type)},
	}

	if change.Employee != nil {
		n.Metadata["name"] = change.Employee.Name
		n.Metadata["role"] = change.Employee.Role
	}

	return a.client.SendNotificationWithContext(ctx, n)
}

func mapEvent(changeType service.ChangeType) notification.EventType {
	switch changeType {
	case service.ChangeCreated:
		return notification.EventEmployeeCreated
	case service.ChangeUpdated:
		return notification.EventEmployeeUpdated
	case service.ChangeDeleted:
		return notification.EventEmployeeDeleted
	default:
		return notification.EventType(changeType)
	}
}

// mapNotificationLevel maps service change types to client notification levels
func mapNotificationLevel(changeType service.ChangeType) notification.NotificationLevel {
	if changeType == service.ChangeDeleted {
		return notification.LevelWarning
	}
	return notification.LevelInfo
}
