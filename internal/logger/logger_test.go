package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.InfoLevel, New(new(bytes.Buffer)).GetLevel())

	t.Setenv("GIN_MODE", "debug")
	assert.Equal(t, logrus.DebugLevel, New(new(bytes.Buffer)).GetLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, New(new(bytes.Buffer)).GetLevel())
}

func TestComponent(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	Component(New(&buf), "ledger").Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ledger", record[componentField])
	assert.Equal(t, "hello", record["msg"])

	assert.NotPanics(t, func() {
		Component(nil, "nil").Info("discarded")
	})
}
