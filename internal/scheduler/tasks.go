package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAssessmentRefresh = "assessments.refresh"

type AssessmentRefreshPayload struct {
	GuesthouseID string `json:"guesthouseId"`
}

func NewAssessmentRefreshTask(payload AssessmentRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAssessmentRefresh, data), nil
}

func ParseAssessmentRefreshPayload(task *asynq.Task) (AssessmentRefreshPayload, error) {
	var payload AssessmentRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AssessmentRefreshPayload{}, err
	}
	return payload, nil
}
