package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/internal/config"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext_AddsCorrelationField(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	previous := L
	L = &logger{entry: logrus.NewEntry(base)}
	t.Cleanup(func() { L = previous })

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).WithField("project_id", "prj123").Info("sincronizado")

	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), `"project_id":"prj123"`)
}

func TestOutput(t *testing.T) {
	assert.Equal(t, os.Stdout, Output(config.App{}))

	file := filepath.Join(t.TempDir(), "app.log")
	w := Output(config.App{LogFile: file, LogMaxSizeMB: 1, LogMaxBackups: 1})

	_, err := w.Write([]byte("linha\n"))
	require.NoError(t, err)
	assert.FileExists(t, file)
}
