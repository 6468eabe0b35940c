package prize

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// photoMimeTypes maps image file extensions to the mime type embedded in
// the data URL.
var photoMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// maxPhotoBytes caps embedded photos; the whole collection lives in one
// store slot, so oversized images would bloat every save.
const maxPhotoBytes = 2 << 20

// EncodePhoto reads an image file and returns it embedded as a base64
// data: URL, ready to store inline on a record.
func EncodePhoto(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := photoMimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported photo format %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return "", fmt.Errorf("photo %s is %d bytes, limit is %d", filepath.Base(path), len(data), maxPhotoBytes)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
