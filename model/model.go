package model

type Homework struct {
	Name   string
	Status string
}

// StatusResponse is a validated answer of the homework statuses API.
// CurrentDate is 0 when the API returned a null cursor.
type StatusResponse struct {
	Homeworks   []Homework
	CurrentDate int64
}

type Notification struct {
	Topic    string
	Title    string
	Tags     []string
	Message  string
	Priority int
}
