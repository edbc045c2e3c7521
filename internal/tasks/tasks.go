// Package tasks defines the deferred work exchanged between the API server
// and the worker over the asynq redis queue.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeConfirmationEmail is the task type for sending a confirmation code.
const TypeConfirmationEmail = "email:confirm"

// ConfirmationEmailPayload carries the single input of a confirmation task.
type ConfirmationEmailPayload struct {
	Email string `json:"email"`
}

// NewConfirmationEmailTask builds an asynq task for the given email.
func NewConfirmationEmailTask(email string) (*asynq.Task, error) {
	payload, err := json.Marshal(ConfirmationEmailPayload{Email: email})
	if err != nil {
		return nil, fmt.Errorf("marshal confirmation payload: %w", err)
	}
	return asynq.NewTask(TypeConfirmationEmail, payload), nil
}
