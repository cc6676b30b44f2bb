package v1

import (
	"strconv"

	"github.com/Behyna/sms-services/scheduler/internal/api/contract"
	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const codeSuccess = "success"

// fieldSetter is the part of a form the handlers edit.
type fieldSetter interface {
	SetPhoneNumber(value string)
	SetContent(value string)
	SetScheduledAt(value string)
}

type Handler struct {
	logger        *zap.Logger
	page          *service.Page
	notifications *service.NotificationQueue
}

func NewHandler(logger *zap.Logger, page *service.Page, notifications *service.NotificationQueue) *Handler {
	return &Handler{
		logger:        logger,
		page:          page,
		notifications: notifications,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) State(c *fiber.Ctx) error {
	return h.ok(c, fiber.StatusOK, "", h.page.State())
}

func (h *Handler) SetTab(c *fiber.Ctx) error {
	var req TabRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid tab request", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMsgInvalidRequestBody)
	}

	if err := h.page.SetTab(service.Tab(req.Tab)); err != nil {
		return err
	}

	return h.ok(c, fiber.StatusOK, "", h.page.State())
}

func (h *Handler) SchedulerForm(c *fiber.Ctx) error {
	return h.ok(c, fiber.StatusOK, "", h.page.Scheduler().State())
}

func (h *Handler) Schedule(c *fiber.Ctx) error {
	form := h.page.Scheduler()
	if err := h.applyFields(c, form); err != nil {
		return err
	}

	msg, err := form.Submit(c.UserContext())
	if err != nil {
		return err
	}

	return h.ok(c, fiber.StatusCreated, constants.MsgMessageScheduled, msg)
}

func (h *Handler) Messages(c *fiber.Ctx) error {
	list := h.page.List()
	if c.Context().QueryArgs().Has("search") {
		list.SetFilter(c.Query("search"))
	}

	return h.ok(c, fiber.StatusOK, "", MessagesResponse{Search: list.Filter(), Rows: list.Rows()})
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	if err := h.page.Load(c.UserContext()); err != nil {
		return err
	}

	list := h.page.List()
	return h.ok(c, fiber.StatusOK, "", MessagesResponse{Search: list.Filter(), Rows: list.Rows()})
}

func (h *Handler) OpenEdit(c *fiber.Ctx) error {
	id, err := messageID(c)
	if err != nil {
		return err
	}

	form, err := h.page.List().Edit(id)
	if err != nil {
		return err
	}

	return h.ok(c, fiber.StatusOK, "", EditFormResponse{MessageID: id, FormState: form.State()})
}

func (h *Handler) UpdateMessage(c *fiber.Ctx) error {
	id, err := messageID(c)
	if err != nil {
		return err
	}

	form, err := h.page.List().Edit(id)
	if err != nil {
		return err
	}
	if err := h.applyFields(c, form); err != nil {
		return err
	}

	msg, err := form.Submit(c.UserContext())
	if err != nil {
		return err
	}

	return h.ok(c, fiber.StatusOK, constants.MsgMessageUpdated, msg)
}

func (h *Handler) CancelEdit(c *fiber.Ctx) error {
	id, err := messageID(c)
	if err != nil {
		return err
	}

	if form := h.page.List().Editing(); form != nil && form.MessageID() == id {
		form.Cancel()
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMessage deletes a message. The browser confirmation dialog is the
// confirm query parameter: anything but true aborts without a request.
func (h *Handler) DeleteMessage(c *fiber.Ctx) error {
	id, err := messageID(c)
	if err != nil {
		return err
	}

	confirmed := c.QueryBool("confirm", false)
	outcome, err := h.page.List().Delete(c.UserContext(), id, service.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if err != nil {
		return err
	}

	if outcome == service.DeleteAborted {
		return h.ok(c, fiber.StatusOK, "", DeleteResponse{Deleted: false})
	}
	return h.ok(c, fiber.StatusOK, constants.MsgMessageDeleted, DeleteResponse{Deleted: true})
}

func (h *Handler) Notifications(c *fiber.Ctx) error {
	return h.ok(c, fiber.StatusOK, "", h.notifications.Drain())
}

func (h *Handler) applyFields(c *fiber.Ctx, form fieldSetter) error {
	if len(c.Body()) == 0 {
		return nil
	}

	var req FormRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid form request", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, constants.ErrMsgInvalidRequestBody)
	}

	if req.PhoneNumber != nil {
		form.SetPhoneNumber(*req.PhoneNumber)
	}
	if req.Content != nil {
		form.SetContent(*req.Content)
	}
	if req.ScheduledAt != nil {
		form.SetScheduledAt(*req.ScheduledAt)
	}

	return nil
}

func (h *Handler) ok(c *fiber.Ctx, status int, message string, result any) error {
	return c.Status(status).JSON(contract.Response{
		Successful: true,
		Code:       codeSuccess,
		Message:    message,
		TrackID:    c.GetRespHeader(schedulerapi.TrackIDHeader),
		Result:     result,
	})
}

func messageID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, constants.ErrMsgInvalidRequestBody)
	}
	return id, nil
}
