package notifier

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordingSink struct {
	titles []string
	err    error
}

func (r *recordingSink) Notify(title, body string) error {
	r.titles = append(r.titles, title)
	return r.err
}

func TestMulti(t *testing.T) {
	ok := &recordingSink{}
	bad := &recordingSink{err: errors.New("offline")}
	after := &recordingSink{}

	err := Multi{ok, bad, after}.Notify("Rise & Pulse", "body")
	if err == nil || !strings.Contains(err.Error(), "offline") {
		t.Errorf("Multi.Notify() = %v", err)
	}
	if len(ok.titles) != 1 || len(after.titles) != 1 {
		t.Error("a failing sink stopped delivery to the others")
	}
	if err := (Multi{}).Notify("x", "y"); err != nil {
		t.Errorf("empty Multi = %v", err)
	}
}

func TestFunc(t *testing.T) {
	var got string
	s := Func(func(title, body string) error {
		got = title + "|" + body
		return nil
	})
	_ = s.Notify("a", "b")
	if got != "a|b" {
		t.Errorf("Func sink got %q", got)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }

	if err := w.Notify("Rise & Pulse", "Today is a fresh canvas."); err != nil {
		t.Fatal(err)
	}
	if err := w.Notify("📝 Water plants", ""); err != nil {
		t.Fatal(err)
	}
	want := "[09:00] Rise & Pulse - Today is a fresh canvas.\n[09:00] 📝 Water plants\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogSink(t *testing.T) {
	if err := (LogSink{}).Notify("title", "body"); err != nil {
		t.Errorf("LogSink.Notify() = %v", err)
	}
}
