package practicum

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"homework-bot/model"
)

const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

var HomeworkVerdicts = map[string]string{
	StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	StatusReviewing: "The work has been taken for review.",
	StatusRejected:  "The work has been reviewed: the reviewer left some remarks.",
}

// CheckResponse validates the shape of a decoded API answer.
// Both keys must be present; a null current_date yields a zero cursor.
func CheckResponse(answer any) (*model.StatusResponse, error) {
	if answer == nil {
		return nil, errors.Wrap(ErrPayload, "response is empty")
	}
	obj, ok := answer.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrPayload, "response is %T, not an object", answer)
	}
	if len(obj) == 0 {
		return nil, errors.Wrap(ErrPayload, "response is empty")
	}

	rawHomeworks, ok := obj["homeworks"]
	if !ok {
		return nil, errors.Wrap(ErrPayload, "key homeworks not found")
	}
	rawDate, ok := obj["current_date"]
	if !ok {
		return nil, errors.Wrap(ErrPayload, "key current_date not found")
	}

	list, ok := rawHomeworks.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrPayload, "homeworks is %T, not a list", rawHomeworks)
	}

	resp := &model.StatusResponse{Homeworks: make([]model.Homework, 0, len(list))}
	for i, item := range list {
		hw, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrPayload, "homeworks[%d] is %T, not an object", i, item)
		}
		name, _ := hw["homework_name"].(string)
		status, _ := hw["status"].(string)
		resp.Homeworks = append(resp.Homeworks, model.Homework{Name: name, Status: status})
	}

	switch date := rawDate.(type) {
	case nil:
	case json.Number:
		n, err := date.Int64()
		if err != nil {
			return nil, errors.Wrapf(ErrPayload, "current_date %q is not an integer", date.String())
		}
		resp.CurrentDate = n
	default:
		return nil, errors.Wrapf(ErrPayload, "current_date is %T, not a number", rawDate)
	}

	return resp, nil
}

// ParseStatus renders the verdict message for a single homework.
func ParseStatus(hw model.Homework) (string, error) {
	if hw.Name == "" || hw.Status == "" {
		return "", errors.Wrapf(ErrPayload, "homework name or status is missing: status: %q, name: %q",
			hw.Status, hw.Name)
	}

	verdict, ok := HomeworkVerdicts[hw.Status]
	if !ok {
		return "", errors.Wrapf(ErrUnknownStatus, "status %q", hw.Status)
	}

	return fmt.Sprintf(`Review status changed for "%s". %s`, hw.Name, verdict), nil
}
