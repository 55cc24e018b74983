package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/selfcare/core"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), core.NewTestConfig())

	tests := []struct {
		name  string
		log   func(msg string, args ...interface{})
		msg   string
		args  []interface{}
		wants []string
	}{
		{name: "debug", log: logger.Debug, msg: "loading", wants: []string{"DEBUG: loading"}},
		{name: "info with person", log: logger.Info, msg: "stage edited", args: []interface{}{core.Person{ID: "student-1"}}, wants: []string{"INFO: stage edited", "person: student-1"}},
		{name: "warn with extras", log: logger.Warn, msg: "locked", args: []interface{}{map[string]interface{}{"index": 2}}, wants: []string{"WARN: locked", "map[index:2]"}},
		{name: "error", log: logger.Error, msg: "saving", args: []interface{}{errors.New("store down")}, wants: []string{"ERROR: saving", "store down"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log(tt.msg, tt.args...)
			for _, want := range tt.wants {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log output = %q, want it to contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := NewRollbarLogger(log.New(&bytes.Buffer{}, "", 0), core.NewTestConfig())
	err := errors.New("boom")
	extras := map[string]interface{}{"a": 1}

	got := logger.prepare("msg", []interface{}{core.Person{ID: "1"}, err, core.Person{ID: "2"}, extras})
	if len(got) != 3 || got[0] != "msg" || got[1] != err {
		t.Errorf("prepare() = %v, want [msg %v %v]", got, err, extras)
	}
}
