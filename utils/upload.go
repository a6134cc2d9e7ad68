package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadRoot is the directory all stored images live under. RemoveImage
// refuses to touch anything outside it.
const UploadRoot = "uploads"

// MaxImageSize is the upload cap (5 MiB).
const MaxImageSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrFileTooLarge = errors.New("File size too large (max 5MB)")
	ErrBadFileType  = errors.New("Invalid file type. Only JPG, JPEG, PNG, GIF and WEBP images are allowed")
)

// SaveImage validates and stores an uploaded image under dir (which must sit
// below UploadRoot) and returns the relative stored path. Validation is
// extension based only; the extension is lower-cased before the check.
func SaveImage(c *gin.Context, file *multipart.FileHeader, dir, prefix string) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", ErrBadFileType
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating upload directory: %w", err)
	}

	token := strings.Split(uuid.NewString(), "-")[0]
	filename := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().Unix(), token, ext)
	storedPath := filepath.ToSlash(filepath.Join(dir, filename))

	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		return "", fmt.Errorf("error saving image: %w", err)
	}
	return storedPath, nil
}

// RemoveImage deletes a previously stored image. External URLs and paths
// outside UploadRoot are ignored, so an "image" column holding a remote URL
// never triggers a local delete. Best effort: failures are logged, never
// returned.
func RemoveImage(path string) {
	if path == "" || strings.Contains(path, "://") {
		return
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(clean, UploadRoot+"/") {
		return
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		if ErrorLogger != nil {
			ErrorLogger.Errorf("failed to remove image %s: %v", clean, err)
		}
	}
}
