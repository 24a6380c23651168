package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB

// SaveUpload writes a multipart file under dir with a random name and
// returns the public URL path. The extension is kept, everything else
// about the client filename is discarded.
func SaveUpload(c *gin.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file exceeds %dMB limit", maxUploadSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
