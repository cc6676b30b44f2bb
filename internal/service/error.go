package service

import (
	"errors"

	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
)

var (
	ErrSubmissionInProgress = errors.New("SUBMISSION_IN_PROGRESS")
	ErrDeleteInProgress     = errors.New("DELETE_IN_PROGRESS")
	ErrFormClosed           = errors.New("FORM_CLOSED")
	ErrMessageNotFound      = errors.New("MESSAGE_NOT_FOUND")
	ErrUnknownTab           = errors.New("UNKNOWN_TAB")
)

// failureMessage is the notification text for a failed backend call.
func failureMessage(err error, fallback string) string {
	var reqErr *schedulerapi.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
