package schedulerapi

// ScheduleMessageRequest is the body of both create and update. The message id
// only ever travels in the path.
type ScheduleMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Content     string `json:"content"`
	ScheduledAt string `json:"scheduled_at"`
}
