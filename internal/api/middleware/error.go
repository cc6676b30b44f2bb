package middleware

import (
	"errors"

	"github.com/Behyna/sms-services/scheduler/internal/api/contract"
	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var serviceErrorCodes = map[error]string{
	service.ErrSubmissionInProgress: constants.ErrCodeActionInProgress,
	service.ErrDeleteInProgress:     constants.ErrCodeActionInProgress,
	service.ErrFormClosed:           constants.ErrCodeFormClosed,
	service.ErrMessageNotFound:      constants.ErrCodeMessageNotFound,
	service.ErrUnknownTab:           constants.ErrCodeUnknownTab,
}

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			validationErrs validation.Errors
			fieldErr       validation.FieldError
			requestErr     *schedulerapi.RequestError
			fiberErr       *fiber.Error
		)

		switch {
		case errors.As(err, &validationErrs):
			return handleValidationError(c, validationErrs)
		case errors.As(err, &fieldErr):
			return handleValidationError(c, validation.Errors{fieldErr.Field: fieldErr.Message})
		case errors.As(err, &requestErr):
			return respond(c, constants.ErrCodeBackendRequestFailed, requestErr.Message, nil)
		case errors.As(err, &fiberErr):
			return handleFiberError(c, fiberErr)
		}

		for target, code := range serviceErrorCodes {
			if errors.Is(err, target) {
				return respond(c, code, constants.GetErrorMessage(code), nil)
			}
		}

		logger.Error("Unhandled request error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))

		return respond(c, constants.ErrCodeInternalError, constants.GetErrorMessage(constants.ErrCodeInternalError), nil)
	}
}

func handleValidationError(c *fiber.Ctx, errs validation.Errors) error {
	fields := make(map[string]string, len(errs))
	for field, msg := range errs {
		fields[string(field)] = msg
	}

	return respond(c, constants.ErrCodeValidationFailed, constants.GetErrorMessage(constants.ErrCodeValidationFailed), fields)
}

func handleFiberError(c *fiber.Ctx, err *fiber.Error) error {
	switch err.Code {
	case fiber.StatusBadRequest:
		return respond(c, constants.ErrCodeInvalidRequestBody, constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody), nil)
	case fiber.StatusNotFound:
		return respond(c, constants.ErrCodeRouteNotFound, constants.GetErrorMessage(constants.ErrCodeRouteNotFound), nil)
	}

	return c.Status(err.Code).JSON(contract.ResponseError{
		Code:    constants.ErrCodeInternalError,
		Message: err.Message,
		TrackID: c.GetRespHeader(schedulerapi.TrackIDHeader),
	})
}

func respond(c *fiber.Ctx, code, message string, fields map[string]string) error {
	return c.Status(constants.GetHTTPStatus(code)).JSON(contract.ResponseError{
		Code:    code,
		Message: message,
		Fields:  fields,
		TrackID: c.GetRespHeader(schedulerapi.TrackIDHeader),
	})
}
