package schedulerapi

import "github.com/Behyna/sms-services/scheduler/internal/model"

type MessageResponse struct {
	Data model.Message `json:"data"`
}

type ListMessagesResponse struct {
	Messages []model.Message `json:"messages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
