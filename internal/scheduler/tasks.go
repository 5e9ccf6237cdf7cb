package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskInquiryNotify = "inquiry.notify"

// InquiryNotifyPayload carries everything the staff email shows, so the
// worker needs no storage access.
type InquiryNotifyPayload struct {
	InquiryID   string    `json:"inquiryId"`
	ReceivedAt  time.Time `json:"receivedAt"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company,omitempty"`
	Service     string    `json:"service,omitempty"`
	ProjectType string    `json:"projectType,omitempty"`
	Message     string    `json:"message"`
	FileName    string    `json:"fileName,omitempty"`
	Language    string    `json:"language"`
}

func NewInquiryNotifyTask(payload InquiryNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInquiryNotify, data), nil
}

func ParseInquiryNotifyPayload(task *asynq.Task) (InquiryNotifyPayload, error) {
	var payload InquiryNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return InquiryNotifyPayload{}, err
	}
	return payload, nil
}
