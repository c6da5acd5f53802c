package services

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// thumbnail bounds for profile pictures
const (
	thumbWidth  = 125
	thumbHeight = 125
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// PictureService stores uploaded profile pictures as bounded thumbnails
// under collision-resistant random filenames.
type PictureService struct {
	dir string
}

func NewPictureService(dir string) *PictureService {
	return &PictureService{dir: dir}
}

// Save decodes the upload, fits it into the thumbnail bounds and writes it
// out as <random>.<ext>. Returns the stored filename for the user record.
func (s *PictureService) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", ErrUnsupportedImage
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		logger.Log.Warn("picture decode failed", zap.String("name", originalName), zap.Error(err))
		return "", ErrUnsupportedImage
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	filename := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(s.dir, filename)
	if err := imaging.Save(thumb, path); err != nil {
		logger.Log.Error("picture save failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	logger.Log.Info("profile picture stored", zap.String("file", filename))
	return filename, nil
}
