package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"bookshelf/internal/confirm"
	"bookshelf/internal/mail"
)

const confirmationSubject = "Письмо с подтверждением регистрации"

// Handler processes queued tasks on the worker side.
type Handler struct {
	codes  confirm.Store
	mailer mail.Sender
}

// NewHandler creates a task handler.
func NewHandler(codes confirm.Store, mailer mail.Sender) *Handler {
	return &Handler{codes: codes, mailer: mailer}
}

// ProcessTask dispatches a task to its processor based on type.
func (h *Handler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	switch task.Type() {
	case TypeConfirmationEmail:
		return h.processConfirmationEmail(ctx, task)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type())
	}
}

// processConfirmationEmail generates a code, stores it, then sends the mail.
// The store write must happen before the send so the code is always readable
// by the time the message reaches the user.
func (h *Handler) processConfirmationEmail(ctx context.Context, task *asynq.Task) error {
	var payload ConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal confirmation payload: %w", err)
	}

	code := confirm.GenerateCode()
	if err := h.codes.Set(ctx, payload.Email, code, confirm.CodeTTL); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	if err := h.mailer.Send(ctx, payload.Email, confirmationSubject, confirmationBody(code)); err != nil {
		log.Printf("confirmation email to %s failed: %v", payload.Email, err)
		return err
	}
	return nil
}

func confirmationBody(code string) string {
	return fmt.Sprintf(`
    Рады приветствовать на нашем сайте!
    Проверочный код для подтверждения регистрации (действителен в течении 24 часов):
    <b>%s</b>
    `, code)
}
