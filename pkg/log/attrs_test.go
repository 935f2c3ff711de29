package log_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/relay/pkg/log"
)

type (
	runID   string
	errStub string
)

func TestRunID(t *testing.T) {
	attr := log.RunID(runID("run-123"))
	assertAttrEqual(t, attr, "run_id", "run-123")
}

func TestLocator(t *testing.T) {
	attr := log.Locator("transform_data.go")
	assertAttrEqual(t, attr, "locator", "transform_data.go")
}

func TestIndex(t *testing.T) {
	attr := log.Index(3)
	assert.Equal(t, "index", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())
}

func TestSource(t *testing.T) {
	attr := log.Source("file:///tmp/data", "workflow.json")
	assert.Equal(t, "source", attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())

	group := attr.Value.Group()
	assert.Len(t, group, 2)
	assertAttrEqual(t, group[0], "bucket", "file:///tmp/data")
	assertAttrEqual(t, group[1], "key", "workflow.json")
}

func TestError(t *testing.T) {
	attr := log.Error(nil)
	assertAttrEqual(t, attr, "error", "")

	attr = log.Error(errStub("boom"))
	assertAttrEqual(t, attr, "error", "boom")
}

func (e errStub) Error() string { return string(e) }

func assertAttrEqual(t *testing.T, attr slog.Attr, key, value string) {
	t.Helper()
	assert.Equal(t, key, attr.Key)
	assert.Equal(t, value, attr.Value.String())
}
