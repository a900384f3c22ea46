package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the body of a TaskWelcome task.
type WelcomeEmailPayload struct {
	To string `json:"to"`
}

// NewWelcomeEmailTask builds the task that greets a new supervisor.
func NewWelcomeEmailTask(to string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
