package core

type NotificationKind string

const (
	NotificationStageLocked NotificationKind = "stage-locked"
	NotificationResult      NotificationKind = "result"
)

// Notification is a human readable status message for the presentation layer.
type Notification struct {
	Kind    NotificationKind
	Profile string
	Title   string
	Message string
	Data    map[string]interface{}
}

// Notifier delivers notifications. Notify is fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}
