package filex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadAsDataURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	url, size, err := ReadAsDataURL(path)
	require.NoError(t, err)
	require.Equal(t, int64(11), size)
	require.True(t, strings.HasPrefix(url, "data:text/plain"), url)
	require.Contains(t, url, ";base64,")
}

func TestReadAsDataURL_MissingFile(t *testing.T) {
	_, _, err := ReadAsDataURL(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDataURL_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	payload := []byte("%PDF-1.4 fake document")
	require.NoError(t, os.WriteFile(src, payload, 0o600))

	url, _, err := ReadAsDataURL(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "out.pdf")
	n, err := WriteFromDataURL(dst, url)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestWriteFromDataURL_Malformed(t *testing.T) {
	dir := t.TempDir()
	for _, bad := range []string{
		"",
		"hello",
		"data:text/plain,not-base64-form",
		"data:text/plain;base64,@@@",
	} {
		_, err := WriteFromDataURL(filepath.Join(dir, "out"), bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1 << 10, "1 KB"},
		{42 << 10, "42 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, HumanSize(tc.n))
	}
}
