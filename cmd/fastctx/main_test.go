package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/fastctx/internal/credential"
	"github.com/Cyclone1070/fastctx/internal/result"
)

func sampleResult() *result.Result {
	return &result.Result{
		Files: []result.File{{
			Path:     "src/auth.go",
			FullPath: "/proj/src/auth.go",
			Ranges:   []result.Range{{Start: 10, End: 42}},
		}},
		Patterns: []string{"authenticate"},
	}
}

func TestPrintResult_Text(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printResult(&buf, sampleResult(), false))

	assert.Contains(t, buf.String(), "/proj/src/auth.go")
	assert.Contains(t, buf.String(), "L10-42")
}

func TestPrintResult_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printResult(&buf, sampleResult(), true))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Contains(t, payload, "files")
	assert.Contains(t, payload, "rg_patterns")
}

func TestPrintResult_FailureIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	res := result.Failed(result.KindRateLimited, errors.New("rate limited, try again later"))

	require.NoError(t, printResult(&buf, res, false))

	assert.Contains(t, buf.String(), "rate limited")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func newStateDB(t *testing.T, value string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.vscdb")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO ItemTable (key, value) VALUES ('windsurfAuthStatus', ?)", value)
	require.NoError(t, err)
	return path
}

func TestRunExtractKey_MasksByDefault(t *testing.T) {
	path := newStateDB(t, `{"apiKey":"sk-ws-01-abcdef1234"}`)
	var buf bytes.Buffer

	require.NoError(t, runExtractKey(&buf, path, false, false))

	assert.Contains(t, buf.String(), "Database: "+path)
	assert.Contains(t, buf.String(), "API key: ****1234")
	assert.NotContains(t, buf.String(), "sk-ws-01")
}

func TestRunExtractKey_RevealJSON(t *testing.T) {
	path := newStateDB(t, `{"apiKey":"sk-ws-01-abcdef1234"}`)
	var buf bytes.Buffer

	require.NoError(t, runExtractKey(&buf, path, true, true))

	var out extractOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, extractOutput{APIKey: "sk-ws-01-abcdef1234", DBPath: path}, out)
}

func TestRunExtractKey_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.vscdb")
	var buf bytes.Buffer

	err := runExtractKey(&buf, path, true, false)

	var nf *credential.NotFoundError
	require.ErrorAs(t, err, &nf)
	var out extractOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Empty(t, out.APIKey)
	assert.Contains(t, out.Error, "state database not found")
	assert.NotEmpty(t, out.Hint)
}
