package models

// ResultStatus classifies the outcome of a write operation.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// ViewName identifies where the user should land after a write.
type ViewName string

const (
	ViewList     ViewName = "list"
	ViewDetail   ViewName = "detail"
	ViewTrash    ViewName = "trash"
	ViewNewForm  ViewName = "new"
	ViewEditForm ViewName = "edit"
	ViewLogin    ViewName = "login"
	ViewRegister ViewName = "register"
	ViewHome     ViewName = "home"
)

// NextView is a redirect target. TaskID is set for task-scoped views.
type NextView struct {
	Name   ViewName
	TaskID string
}

// Outcome is what a write use case hands back to the presentation layer:
// a confirmation (or failure) message and where to go next.
type Outcome struct {
	Status  ResultStatus
	Message string
	Next    NextView
}

func Success(msg string, next NextView) Outcome {
	return Outcome{Status: StatusSuccess, Message: msg, Next: next}
}

func Failure(msg string, next NextView) Outcome {
	return Outcome{Status: StatusError, Message: msg, Next: next}
}
