package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset_analytics/internal/platform/config"
)

func TestNew_JSONForDeployedEnvs(t *testing.T) {
	t.Parallel()

	for _, env := range []string{config.EnvDev, config.EnvProd} {
		t.Run(env, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			newWithWriter(env, &buf).Info("dataset loaded", "records", 3)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, "dataset loaded", line["msg"])
			assert.Equal(t, 3.0, line["records"])
		})
	}
}

func TestNew_TextLocally(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newWithWriter(config.EnvLocal, &buf).Debug("partition loaded", "label", "early")

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=DEBUG"), out)
	assert.Contains(t, out, "label=early")
}

func TestNew_ProdDropsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newWithWriter(config.EnvProd, &buf).Debug("noise")

	assert.Zero(t, buf.Len())
}
