package notifysvc

import (
	"fmt"
	"net/mail"

	"github.com/trezcool/selfcare/core"
)

// ResultTemplate is the email template of result notifications.
const ResultTemplate = "exam_result"

type logNotifier struct {
	logger core.Logger
}

// NewLogNotifier logs every notification: locked stages as warnings, the rest as info.
func NewLogNotifier(logger core.Logger) core.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(notif core.Notification) {
	msg := fmt.Sprintf("%s: %s", notif.Title, notif.Message)
	person := core.Person{ID: notif.Profile, Username: notif.Profile}
	if notif.Kind == core.NotificationStageLocked {
		n.logger.Warn(msg, person, notif.Data)
		return
	}
	n.logger.Info(msg, person, notif.Data)
}

type mailNotifier struct {
	mailSvc core.EmailService
	to      mail.Address
}

// NewMailNotifier emails result notifications to the configured notify address.
// Other kinds are left to the presentation layer.
func NewMailNotifier(mailSvc core.EmailService, conf *core.Config) core.Notifier {
	return &mailNotifier{mailSvc: mailSvc, to: conf.NotifyEmail()}
}

func (n *mailNotifier) Notify(notif core.Notification) {
	if notif.Kind != core.NotificationResult || n.to.Address == "" {
		return
	}
	n.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{n.to},
		Subject:      notif.Title,
		TemplateName: ResultTemplate,
		TemplateData: map[string]interface{}{
			"Title":   notif.Title,
			"Message": notif.Message,
			"Profile": notif.Profile,
		},
	})
}

type multiNotifier []core.Notifier

// Multi fans a notification out to every notifier, in order.
func Multi(notifiers ...core.Notifier) core.Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Notify(notif core.Notification) {
	for _, n := range m {
		n.Notify(notif)
	}
}
