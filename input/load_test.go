package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeGzip(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoad_Lines(t *testing.T) {
	path := writeFile(t, "day12.txt", "[1,2,\n3]\n")

	lines, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"[1,2,", "3]"}, lines)
	assert.Equal(t, "[1,2,3]", Join(lines))
}

func TestLoad_CRLF(t *testing.T) {
	path := writeFile(t, "crlf.txt", "{\"a\":1}\r\n")

	text, err := LoadText(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestLoad_Gzip(t *testing.T) {
	path := writeGzip(t, "day12.txt.gz", `[1,{"c":"red","b":2},3]`+"\n")

	text, err := LoadText(path)
	require.NoError(t, err)
	assert.Equal(t, `[1,{"c":"red","b":2},3]`, text)
}

func TestLoad_BadGzip(t *testing.T) {
	path := writeFile(t, "broken.gz", "not gzip")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLines_LongLine(t *testing.T) {
	long := "[" + strings.Repeat("1,", 200000) + "1]"

	lines, err := ReadLines(strings.NewReader(long))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, long, lines[0])
}

func TestDigest(t *testing.T) {
	// sha256("")
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(""))
	assert.Equal(t, "e3b0c44298fc", ShortDigest(""))
	assert.NotEqual(t, Digest("[1]"), Digest("[2]"))
}
