package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Behyna/sms-services/scheduler/internal/constants"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/internal/validation"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var ErrUsage = errors.New("USAGE")

const usage = `usage:
  scheduler schedule --phone P --content C --at 2006-01-02T15:04
  scheduler list [--search S]
  scheduler edit ID [--phone P] [--content C] [--at 2006-01-02T15:04]
  scheduler delete ID [--yes]
`

// Console runs one terminal command against the page controllers. Every
// failure is printed before Run returns it.
type Console struct {
	page   *service.Page
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger
}

func NewConsole(page *service.Page, in io.Reader, out, errOut io.Writer, logger *zap.Logger) *Console {
	return &Console{
		page:   page,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		logger: logger,
	}
}

func (c *Console) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.usageError("missing command")
	}

	var err error
	switch args[0] {
	case "schedule":
		err = c.schedule(ctx, args[1:])
	case "list":
		err = c.list(ctx, args[1:])
	case "edit":
		err = c.edit(ctx, args[1:])
	case "delete":
		err = c.delete(ctx, args[1:])
	case "help", "-h", "--help":
		_, _ = fmt.Fprint(c.out, usage)
		return nil
	default:
		return c.usageError(fmt.Sprintf("unknown command %q", args[0]))
	}

	if err != nil {
		c.logger.Debug("Command failed", zap.String("command", args[0]), zap.Error(err))
	}
	return err
}

func (c *Console) schedule(ctx context.Context, args []string) error {
	fs := c.flagSet("schedule")
	phone := fs.String("phone", "", "recipient phone number with country code")
	content := fs.String("content", "", "message content")
	at := fs.String("at", "", "local date and time to send at")
	if err := fs.Parse(args); err != nil {
		return c.usageError(err.Error())
	}

	form := c.page.Scheduler()
	form.SetFields(validation.Input{PhoneNumber: *phone, Content: *content, ScheduledAt: *at})

	msg, err := form.Submit(ctx)
	if err != nil {
		c.printValidation(err)
		return err
	}

	_, _ = fmt.Fprintf(c.out, "id: %d\n", msg.ID)
	return nil
}

func (c *Console) list(ctx context.Context, args []string) error {
	fs := c.flagSet("list")
	search := fs.String("search", "", "filter by phone number, content or status")
	if err := fs.Parse(args); err != nil {
		return c.usageError(err.Error())
	}

	if err := c.load(ctx); err != nil {
		return err
	}

	list := c.page.List()
	list.SetFilter(*search)
	rows := list.Rows()
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(c.out, "No messages found")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPHONE\tCONTENT\tSCHEDULED\tSTATUS")
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.Message.ID, row.Message.PhoneNumber, row.Message.Content, row.ScheduledAt, row.StatusLabel)
	}
	return w.Flush()
}

func (c *Console) edit(ctx context.Context, args []string) error {
	fs := c.flagSet("edit")
	phone := fs.String("phone", "", "new phone number")
	content := fs.String("content", "", "new content")
	at := fs.String("at", "", "new local date and time")
	if err := fs.Parse(args); err != nil {
		return c.usageError(err.Error())
	}

	id, err := c.messageID(fs)
	if err != nil {
		return err
	}

	if err := c.load(ctx); err != nil {
		return err
	}

	form, err := c.page.List().Edit(id)
	if err != nil {
		return c.failure(err)
	}

	if fs.Changed("phone") {
		form.SetPhoneNumber(*phone)
	}
	if fs.Changed("content") {
		form.SetContent(*content)
	}
	if fs.Changed("at") {
		form.SetScheduledAt(*at)
	}

	if _, err := form.Submit(ctx); err != nil {
		c.printValidation(err)
		return err
	}
	return nil
}

func (c *Console) delete(ctx context.Context, args []string) error {
	fs := c.flagSet("delete")
	yes := fs.BoolP("yes", "y", false, "delete without asking")
	if err := fs.Parse(args); err != nil {
		return c.usageError(err.Error())
	}

	id, err := c.messageID(fs)
	if err != nil {
		return err
	}

	if err := c.load(ctx); err != nil {
		return err
	}

	confirmer := service.Confirmer(service.ConfirmFunc(c.prompt))
	if *yes {
		confirmer = service.ConfirmFunc(func(string) bool { return true })
	}

	outcome, err := c.page.List().Delete(ctx, id, confirmer)
	if errors.Is(err, service.ErrMessageNotFound) {
		return c.failure(err)
	}
	if err != nil {
		return err
	}

	if outcome == service.DeleteAborted {
		_, _ = fmt.Fprintln(c.out, "Cancelled")
	}
	return nil
}

// prompt asks a y/N question on the terminal. Anything but yes declines.
func (c *Console) prompt(question string) bool {
	_, _ = fmt.Fprintf(c.out, "%s [y/N]: ", question)

	answer, err := c.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (c *Console) load(ctx context.Context) error {
	if err := c.page.Load(ctx); err != nil {
		return c.failure(err)
	}
	return nil
}

func (c *Console) messageID(fs *pflag.FlagSet) (int64, error) {
	if fs.NArg() != 1 {
		return 0, c.usageError("expected one message ID")
	}

	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return 0, c.usageError(fmt.Sprintf("invalid message ID %q", fs.Arg(0)))
	}
	return id, nil
}

func (c *Console) printValidation(err error) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return
	}

	for _, field := range validation.Fields {
		if msg, ok := errs[field]; ok {
			_, _ = fmt.Fprintf(c.errOut, "%s: %s\n", field, msg)
		}
	}
}

func (c *Console) failure(err error) error {
	message := err.Error()
	if errors.Is(err, service.ErrMessageNotFound) {
		message = constants.ErrMsgMessageNotFound
	}

	_, _ = fmt.Fprintln(c.errOut, "error: "+message)
	return err
}

func (c *Console) usageError(reason string) error {
	_, _ = fmt.Fprintf(c.errOut, "%s\n\n%s", reason, usage)
	return ErrUsage
}

func (c *Console) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
