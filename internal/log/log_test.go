package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "storekeeper/internal/log"
)

func lines(t *testing.T, s string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		out = append(out, m)
	}
	return out
}

func TestEntriesWithoutRequest(t *testing.T) {
	var buf bytes.Buffer
	applog.SetOutput(&buf)
	defer applog.SetOutput(os.Stdout)

	applog.Info(nil, "db.seed", map[string]any{"products": 2})
	applog.Audit(nil, "product.create", map[string]any{"product": "p1"})
	applog.Error(nil, "image.import.fail", errors.New("bad png"), nil)

	es := lines(t, buf.String())
	require.Len(t, es, 3)
	assert.Equal(t, "info", es[0]["level"])
	assert.Equal(t, "db.seed", es[0]["action"])
	assert.NotEmpty(t, es[0]["ts"])
	assert.Equal(t, "audit", es[1]["level"])
	assert.Equal(t, "error", es[2]["level"])
	assert.Equal(t, "bad png", es[2]["err"])
}

func TestSetupLevelAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "storekeeper.log")
	closeLog := applog.Setup(applog.Options{Level: "warn", File: file, MaxSizeMB: 1, Output: &buf})

	applog.Info(nil, "dropped", nil)
	applog.Audit(nil, "kept.audit", nil)
	applog.Security(nil, "kept.warn", nil)
	closeLog()
	applog.SetOutput(os.Stdout)

	es := lines(t, buf.String())
	require.Len(t, es, 2)
	assert.Equal(t, "kept.audit", es[0]["action"])
	assert.Equal(t, "warn", es[1]["level"])

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept.warn")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, applog.ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, applog.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, applog.ParseLevel("loud"))
}
