package domain

import "time"

type NotificationLevel string

const (
	LevelInfo  NotificationLevel = "info"
	LevelError NotificationLevel = "error"
)

type NotificationKind string

const (
	NotifyUploadSucceeded    NotificationKind = "upload_succeeded"
	NotifyMissingInput       NotificationKind = "missing_input"
	NotifyUploadFailed       NotificationKind = "upload_failed"
	NotifyPreconditionFailed NotificationKind = "precondition_failed"
	NotifyQueryFailed        NotificationKind = "query_failed"
)

// Notification is a transient user-facing message about one operation.
type Notification struct {
	SessionID string            `json:"session_id"`
	Kind      NotificationKind  `json:"kind"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	Detail    string            `json:"detail,omitempty"`
	At        time.Time         `json:"at"`
}
