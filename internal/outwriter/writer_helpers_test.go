package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded["a"])
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"x", "y"}, func(cw *csv.Writer) error {
		return cw.Write([]string{"1", "2"})
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"x", "y"}, records[0])
	assert.Equal(t, []string{"1", "2"}, records[1])
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	assert.Equal(t, "1.50", fmtFloat(1.5))

	fmtFloat, _ = createFormatters(1)
	assert.Equal(t, "1.5", fmtFloat(1.5))
}

// TestWriteWithFile verifies the file branch actually lands content on disk.
func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "payload")
		return err
	}, "test output")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestWriteWithFileWriterError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(io.Writer) error {
		return errors.New("boom")
	}, "test output")
	assert.Error(t, err)
}
