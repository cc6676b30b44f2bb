package validation

import "github.com/Behyna/sms-services/scheduler/internal/constants"

type Field string

const (
	FieldPhoneNumber Field = "phone_number"
	FieldContent     Field = "content"
	FieldScheduledAt Field = "scheduled_at"
)

var Fields = []Field{FieldPhoneNumber, FieldContent, FieldScheduledAt}

// Rules is the constraint set of one form.
type Rules struct {
	Form              string
	ContentMax        int
	PhoneInvalidError string
}

// The create form caps content at 10 characters and the edit form at 1000.
// Both limits are kept as they are until product settles on one.
var (
	CreateRules = Rules{
		Form:              "create",
		ContentMax:        10,
		PhoneInvalidError: constants.MsgPhoneInvalidWithCode,
	}

	EditRules = Rules{
		Form:              "edit",
		ContentMax:        1000,
		PhoneInvalidError: constants.MsgPhoneInvalid,
	}
)
