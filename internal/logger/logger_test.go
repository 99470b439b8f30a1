// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_FallsBackToGlobal(t *testing.T) {
	e := G(context.Background())
	require.NotNil(t, e)
	assert.Equal(t, L.Logger, e.Logger)
}

func TestWithLogger(t *testing.T) {
	custom := logrus.NewEntry(logrus.New()).WithField("component", "test")
	ctx := WithLogger(context.Background(), custom)

	got := G(ctx)
	assert.Equal(t, "test", got.Data["component"])
	assert.Equal(t, custom.Logger, got.Logger)
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		_ = Configure("warn", "text")
		SetLogOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetLogOutput(&buf)
	require.NoError(t, Configure("debug", "json"))

	L.WithField("skill", "architect").Debug("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "loaded", line["message"])
	assert.Equal(t, "debug", line["logLevel"])
	assert.Equal(t, "architect", line["skill"])
}

func TestConfigure_Invalid(t *testing.T) {
	assert.Error(t, Configure("chatty", "text"))
	assert.Error(t, Configure("info", "xml"))
}
