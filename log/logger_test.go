package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/k0sproject/platform/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	msgs []string
	args [][]any
}

func (r *recorder) Debug(msg string, keysAndValues ...any) { r.add(msg, keysAndValues) }
func (r *recorder) Info(msg string, keysAndValues ...any)  { r.add(msg, keysAndValues) }
func (r *recorder) Warn(msg string, keysAndValues ...any)  { r.add(msg, keysAndValues) }
func (r *recorder) Error(msg string, keysAndValues ...any) { r.add(msg, keysAndValues) }

func (r *recorder) add(msg string, kv []any) {
	r.msgs = append(r.msgs, msg)
	r.args = append(r.args, kv)
}

func TestTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetTraceLogger(log.NewText(buf, slog.LevelDebug))
	t.Cleanup(func() { log.SetTraceLogger(log.Null) })

	log.Trace(context.Background(), "hello", log.FileAttr("/etc/os-release"))
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "file=/etc/os-release")
	assert.NotContains(t, buf.String(), "time=")
}

func TestErrorAttr(t *testing.T) {
	assert.Equal(t, "", log.ErrorAttr(nil).Value.String())
	assert.Equal(t, "boom", log.ErrorAttr(errors.New("boom")).Value.String())
}

func TestWithAttrs(t *testing.T) {
	rec := &recorder{}
	l := log.WithAttrs(rec, "component", "detector")
	l.Debug("one", "k", "v")
	l.Info("two")
	require.Len(t, rec.msgs, 2)
	assert.Equal(t, []any{"component", "detector", "k", "v"}, rec.args[0])
	assert.Equal(t, []any{"component", "detector"}, rec.args[1])
}

func TestLoggerInjectable(t *testing.T) {
	var li log.LoggerInjectable
	assert.False(t, li.HasLogger())
	assert.Equal(t, log.Null, li.Log())

	rec := &recorder{}
	li.SetLogger(rec)
	assert.True(t, li.HasLogger())
	li.LogWithAttrs("a", 1).Warn("x")
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, []any{"a", 1}, rec.args[0])
}
