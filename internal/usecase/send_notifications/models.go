package send_notifications

// Request запрос на рассылку приглашений по расписанию
type Request struct {
	ScheduleID  int64
	PropertyIDs []int64
}

// FailedProperty объект, для которого рассылка не удалась
type FailedProperty struct {
	PropertyID int64  `json:"propertyId"`
	Reason     string `json:"reason"`
}

// Response результат рассылки.
// Каждый объект попадает ровно в одну из трёх секций:
// success - письмо отправлено, skipped - уже было отправлено ранее,
// failed - отправить не удалось (причина указана).
type Response struct {
	Success []int64          `json:"success"`
	Skipped []int64          `json:"skipped"`
	Failed  []FailedProperty `json:"failed"`
}
