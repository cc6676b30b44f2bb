package v1

import "github.com/Behyna/sms-services/scheduler/internal/service"

type MessagesResponse struct {
	Search string        `json:"search"`
	Rows   []service.Row `json:"rows"`
}

type EditFormResponse struct {
	MessageID int64 `json:"message_id"`
	service.FormState
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
