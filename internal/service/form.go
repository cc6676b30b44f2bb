package service

import (
	"sync"

	"github.com/Behyna/sms-services/scheduler/internal/validation"
)

// FormState is a snapshot of a form for rendering.
type FormState struct {
	Fields     validation.Input  `json:"fields"`
	Errors     validation.Errors `json:"errors"`
	Submitting bool              `json:"submitting"`
}

// form holds the state shared by the create and edit forms. The submitting
// flag is the per-form busy flag: while it is set, submit is a no-op.
type form struct {
	mu         sync.Mutex
	fields     validation.Input
	errors     validation.Errors
	submitting bool
	validator  validation.IValidator
}

func (f *form) SetFields(fields validation.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

func (f *form) SetPhoneNumber(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.PhoneNumber = value
}

func (f *form) SetContent(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Content = value
}

func (f *form) SetScheduledAt(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.ScheduledAt = value
}

func (f *form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(validation.Errors, len(f.errors))
	for field, msg := range f.errors {
		errs[field] = msg
	}

	return FormState{Fields: f.fields, Errors: errs, Submitting: f.submitting}
}

// MinScheduledInput is the lower bound for the date-time picker.
func (f *form) MinScheduledInput() string {
	return f.validator.MinScheduledInput()
}

// begin validates the current fields and marks the form busy. Validation runs
// here, at submit time, and never in the background.
func (f *form) begin() (validation.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return validation.Submission{}, ErrSubmissionInProgress
	}

	submission, err := f.validator.ValidateForm(f.fields)
	if err != nil {
		if errs, ok := err.(validation.Errors); ok {
			f.errors = errs
		}
		return validation.Submission{}, err
	}

	f.errors = nil
	f.submitting = true
	return submission, nil
}

func (f *form) end(clear bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	if clear {
		f.fields = validation.Input{}
		f.errors = nil
	}
}
