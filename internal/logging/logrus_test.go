package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewWithOutput("debug", "json", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWithOutput("loud", "json", &bytes.Buffer{}).GetLevel())
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("info", "json", &buf)

	LogError(logger, "shopping", "TogglePurchased", "persist inventory", map[string]int{"index": 2}, errors.New("disk full"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shopping", entry["module"])
	assert.Equal(t, "TogglePurchased", entry["funcName"])
	assert.Equal(t, "persist inventory", entry["context"])
	assert.Equal(t, "disk full", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.NotNil(t, entry["data"])
}
