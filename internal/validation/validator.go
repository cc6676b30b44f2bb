package validation

import (
	"fmt"
	"time"

	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/datetime"
	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/go-playground/validator/v10"
)

// Input is the raw form state as typed by the user. ScheduledAt is a
// date-time input value in the validator's location.
type Input struct {
	PhoneNumber string
	Content     string
	ScheduledAt string
}

// Submission is an Input that passed every rule.
type Submission struct {
	PhoneNumber string
	Content     string
	ScheduledAt time.Time
}

type IValidator interface {
	Validate(field Field, value string) error
	ValidateForm(input Input) (Submission, error)
	MinScheduledInput() string
	Location() *time.Location
}

type Option func(*Validator)

func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

type Validator struct {
	validator *validator.Validate
	rules     Rules
	location  *time.Location
	now       func() time.Time
	metrics   *metrics.Metrics
}

func NewValidator(rules Rules, location *time.Location, opts ...Option) *Validator {
	if location == nil {
		location = time.Local
	}

	v := &Validator{
		validator: validator.New(),
		rules:     rules,
		location:  location,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	_ = v.validator.RegisterValidation(PhoneTag, ValidatePhone)
	_ = v.validator.RegisterValidation(FutureTag, validateFuture(v.now))

	return v
}

func (v *Validator) Location() *time.Location {
	return v.location
}

// MinScheduledInput is the lower bound offered by the date-time picker. It does
// not replace the future check in Validate.
func (v *Validator) MinScheduledInput() string {
	return datetime.MinInput(v.now(), v.location)
}

// Validate checks a single field. It returns nil or a FieldError.
func (v *Validator) Validate(field Field, value string) error {
	var err error
	switch field {
	case FieldPhoneNumber:
		err = v.validatePhone(value)
	case FieldContent:
		err = v.validateContent(value)
	case FieldScheduledAt:
		_, err = v.validateScheduledAt(value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	if err != nil && v.metrics != nil {
		v.metrics.RecordValidationError(v.rules.Form, string(field))
	}

	return err
}

// ValidateForm runs every rule and returns either a Submission or Errors.
func (v *Validator) ValidateForm(input Input) (Submission, error) {
	errs := Errors{}

	if err := v.Validate(FieldPhoneNumber, input.PhoneNumber); err != nil {
		errs.add(err.(FieldError))
	}
	if err := v.Validate(FieldContent, input.Content); err != nil {
		errs.add(err.(FieldError))
	}
	if err := v.Validate(FieldScheduledAt, input.ScheduledAt); err != nil {
		errs.add(err.(FieldError))
	}

	if len(errs) > 0 {
		return Submission{}, errs
	}

	scheduledAt, _ := datetime.ParseInput(input.ScheduledAt, v.location)

	return Submission{
		PhoneNumber: input.PhoneNumber,
		Content:     input.Content,
		ScheduledAt: scheduledAt,
	}, nil
}

func (v *Validator) validatePhone(value string) error {
	if v.validator.Var(value, "required") != nil {
		return FieldError{Field: FieldPhoneNumber, Message: constants.MsgPhoneRequired}
	}
	if v.validator.Var(value, PhoneTag) != nil {
		return FieldError{Field: FieldPhoneNumber, Message: v.rules.PhoneInvalidError}
	}
	return nil
}

func (v *Validator) validateContent(value string) error {
	if v.validator.Var(value, "required") != nil {
		return FieldError{Field: FieldContent, Message: constants.MsgContentRequired}
	}
	if v.validator.Var(value, fmt.Sprintf("max=%d", v.rules.ContentMax)) != nil {
		return FieldError{
			Field:   FieldContent,
			Message: fmt.Sprintf(constants.MsgContentTooLongFormat, v.rules.ContentMax),
		}
	}
	return nil
}

func (v *Validator) validateScheduledAt(value string) (time.Time, error) {
	if v.validator.Var(value, "required") != nil {
		return time.Time{}, FieldError{Field: FieldScheduledAt, Message: constants.MsgScheduledAtRequired}
	}

	scheduledAt, err := datetime.ParseInput(value, v.location)
	if err != nil {
		return time.Time{}, FieldError{Field: FieldScheduledAt, Message: constants.MsgScheduledAtInvalid}
	}

	if v.validator.Var(scheduledAt, FutureTag) != nil {
		return time.Time{}, FieldError{Field: FieldScheduledAt, Message: constants.MsgScheduledAtNotInFuture}
	}

	return scheduledAt, nil
}
