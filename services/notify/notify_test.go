package notifysvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/fs"
	"github.com/trezcool/selfcare/services/email"
	"github.com/trezcool/selfcare/services/logger"
	"github.com/trezcool/selfcare/tests"
)

var (
	locked = core.Notification{
		Kind:    core.NotificationStageLocked,
		Profile: "student-1",
		Title:   "Stage Not Editable",
		Message: `Complete "Prelims" before updating "Mains".`,
	}
	result = core.Notification{
		Kind:    core.NotificationResult,
		Profile: "student-1",
		Title:   "UPSC CSE: Selected",
		Message: "Interview of UPSC CSE is now marked Selected.",
	}
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logsvc.NewRollbarLogger(log.New(&buf, "", 0), core.NewTestConfig()))

	n.Notify(locked)
	assert.Contains(t, buf.String(), "WARN: Stage Not Editable: ")
	assert.Contains(t, buf.String(), "person: student-1")

	buf.Reset()
	n.Notify(result)
	assert.Contains(t, buf.String(), "INFO: UPSC CSE: Selected")
}

func TestMailNotifier(t *testing.T) {
	conf := core.NewTestConfig()
	logger := logsvc.NewRollbarLogger(log.New(&bytes.Buffer{}, "", 0), conf)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf, logger)
	emailsvc.ResetSentMessages()

	n := NewMailNotifier(emailsvc.NewConsoleServiceMock(conf, logger), conf)
	n.Notify(locked)
	assert.Empty(t, emailsvc.GetSentMessages(), "only results are mailed")

	n.Notify(result)
	sent := emailsvc.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "student@test.in", sent[0].To[0].Address)
	assert.Equal(t, result.Title, sent[0].Subject)
	assert.True(t, strings.Contains(sent[0].TextContent, result.Message), sent[0].TextContent)
	assert.Contains(t, sent[0].HTMLContent, "UPSC CSE: Selected")
}

func TestMulti(t *testing.T) {
	first, second := new(testutil.NotifierMock), new(testutil.NotifierMock)
	Multi(first, second).Notify(result)

	assert.Equal(t, []core.Notification{result}, first.Sent())
	assert.Equal(t, []core.Notification{result}, second.Sent())
}
