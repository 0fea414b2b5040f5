package send_notifications

import (
	sendNotifications "github.com/m04kA/PMS-InspectionService/internal/usecase/send_notifications"
)

// SendNotificationsRequest HTTP request model
type SendNotificationsRequest struct {
	PropertyIDs []int64 `json:"propertyIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SendNotificationsRequest) ToUseCaseRequest(scheduleID int64) *sendNotifications.Request {
	return &sendNotifications.Request{
		ScheduleID:  scheduleID,
		PropertyIDs: r.PropertyIDs,
	}
}
