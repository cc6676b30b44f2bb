package constants

// Inline field errors.
const (
	MsgPhoneRequired          = "Phone number is required"
	MsgPhoneInvalid           = "Please enter a valid phone number"
	MsgPhoneInvalidWithCode   = "Please enter a valid phone number with country code"
	MsgContentRequired        = "Message content is required"
	MsgContentTooLongFormat   = "Message cannot exceed %d characters"
	MsgScheduledAtRequired    = "Scheduled date and time is required"
	MsgScheduledAtInvalid     = "Please enter a valid date and time"
	MsgScheduledAtNotInFuture = "Scheduled time must be in the future"
)

// Notifications.
const (
	MsgMessageScheduled = "Message scheduled successfully!"
	MsgMessageUpdated   = "Message updated successfully!"
	MsgMessageDeleted   = "Message deleted successfully!"

	MsgScheduleFailed = "Failed to schedule message"
	MsgUpdateFailed   = "Failed to update message"
	MsgDeleteFailed   = "Failed to delete message"

	MsgConfirmDelete = "Are you sure you want to delete this message?"
)
