package v1

// FormRequest carries form field edits. Omitted fields keep their current
// value in the form.
type FormRequest struct {
	PhoneNumber *string `json:"phone_number"`
	Content     *string `json:"content"`
	ScheduledAt *string `json:"scheduled_at"`
}

type TabRequest struct {
	Tab string `json:"tab"`
}
