package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWithBOM(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, WriteOptions{
		Headers:   []string{"Period", "Average Payroll Cost Amount"},
		Records:   [][]string{{"Jan-2024", "150.00"}, {"Feb-2024", "300.00"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "Period,Average Payroll Cost Amount\nJan-2024,150.00\nFeb-2024,300.00\n", string(out[3:]))
}

func TestWriteWithoutBOM(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, WriteOptions{
		Headers: []string{"Period", "Average"},
		Records: [][]string{{"Jan-2024", "150.00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Period,Average\nJan-2024,150.00\n", buf.String())
}

func TestWriteQuotesCommas(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, WriteOptions{
		Records: [][]string{{"Diaz, Ada", "100.00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "\"Diaz, Ada\",100.00\n", buf.String())
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "series.csv")

	err := WriteFile(path, WriteOptions{
		Headers:   []string{"Period", "Average"},
		Records:   [][]string{{"Jan-2024", "150.00"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(data), "Jan-2024,150.00")
}
