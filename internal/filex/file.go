// Package filex converts between local files and base64 data URLs, the
// transport shape the vault uses for file content.
package filex

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const fallbackMimeType = "application/octet-stream"

// ReadAsDataURL reads the file at path and returns it as a
// "data:<mime>;base64,<payload>" URL plus the raw size in bytes. The MIME
// type comes from the extension, falling back to content sniffing.
func ReadAsDataURL(path string) (string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if mimeType == "" {
		mimeType = fallbackMimeType
	}

	url := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	return url, int64(len(data)), nil
}

// WriteFromDataURL decodes a base64 data URL and writes the payload to path
// with owner-only permissions. Returns the number of bytes written.
func WriteFromDataURL(path, dataURL string) (int, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return 0, fmt.Errorf("not a data URL")
	}
	_, payload, found := strings.Cut(dataURL, ";base64,")
	if !found {
		return 0, fmt.Errorf("not a base64 data URL")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return 0, fmt.Errorf("decode payload: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(data), nil
}

// HumanSize renders a byte count the way the vault stores item sizes,
// e.g. "0 KB", "12 KB", "3.4 MB".
func HumanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
