package images

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/manthrakodi/bridalstore/config"
	"github.com/manthrakodi/bridalstore/internal/domain"
)

// allowedImageHosts is the fixed allow-list for external image URLs. URL
// validation is pattern matching only; the bytes are never fetched.
var allowedImageHosts = map[string]bool{
	"i.ibb.co":            true,
	"ibb.co":              true,
	"imgbb.com":           true,
	"postimg.cc":          true,
	"i.postimg.cc":        true,
	"imgur.com":           true,
	"i.imgur.com":         true,
	"res.cloudinary.com":  true,
	"images.unsplash.com": true,
}

const tempPrefix = "tmp_"

// StoredFile describes an accepted upload.
type StoredFile struct {
	OriginalName string    `json:"original_name"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	Category     string    `json:"category"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Service owns the upload directory. Uploads stream through a temp file and
// are discarded entirely once the size cap is exceeded.
type Service struct {
	dir        string
	maxSize    int64
	allowedExt map[string]bool
}

func NewService(cfg *config.AppConfig) *Service {
	allowed := make(map[string]bool, len(cfg.Upload.AllowedExts))
	for _, ext := range cfg.Upload.AllowedExts {
		allowed[strings.ToLower(ext)] = true
	}
	return &Service{
		dir:        cfg.Upload.Dir,
		maxSize:    cfg.Upload.MaxUploadSize,
		allowedExt: allowed,
	}
}

// Save streams an upload into <dir>/<category>/<uuid><ext>. The reader is
// consumed at most maxSize+1 bytes; an oversized upload leaves nothing on
// disk.
func (s *Service) Save(category, originalName string, r io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !s.allowedExt[ext] {
		return nil, domain.NewValidationError("files", "file type "+ext+" not allowed")
	}
	category = sanitizeCategory(category)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	tempPath := filepath.Join(s.dir, tempPrefix+random.String(16))
	tempFile, err := os.Create(tempPath)
	if err != nil {
		return nil, errors.Wrap(err, "create temp file")
	}

	written, err := io.Copy(tempFile, io.LimitReader(r, s.maxSize+1))
	closeErr := tempFile.Close()
	if err != nil || closeErr != nil {
		_ = os.Remove(tempPath)
		if err == nil {
			err = closeErr
		}
		return nil, errors.Wrap(err, "write upload")
	}
	if written > s.maxSize {
		_ = os.Remove(tempPath)
		return nil, domain.NewValidationError("files",
			"file "+originalName+" exceeds the upload size limit")
	}

	categoryDir := filepath.Join(s.dir, category)
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		_ = os.Remove(tempPath)
		return nil, errors.Wrap(err, "create category dir")
	}
	filename := uuid.NewString() + ext
	if err := os.Rename(tempPath, filepath.Join(categoryDir, filename)); err != nil {
		_ = os.Remove(tempPath)
		return nil, errors.Wrap(err, "store upload")
	}

	return &StoredFile{
		OriginalName: originalName,
		Filename:     filename,
		URL:          "/uploads/" + category + "/" + filename,
		Size:         written,
		Category:     category,
		UploadedAt:   time.Now(),
	}, nil
}

// ValidateURLs partitions urls into accepted and rejected lists. A URL is
// accepted when it uses http or https, its host is on the image-hosting
// allow-list and its path ends in an allowed extension.
func (s *Service) ValidateURLs(urls []string) (valid, invalid []string) {
	valid = []string{}
	invalid = []string{}
	for _, raw := range urls {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			invalid = append(invalid, raw)
			continue
		}
		if !allowedImageHosts[strings.ToLower(u.Hostname())] {
			invalid = append(invalid, raw)
			continue
		}
		if !s.allowedExt[strings.ToLower(filepath.Ext(u.Path))] {
			invalid = append(invalid, raw)
			continue
		}
		valid = append(valid, raw)
	}
	return valid, invalid
}

// PurgeTemp removes temp files older than age that a crashed or aborted
// upload may have left behind. Returns the number of files removed.
func (s *Service) PurgeTemp(age time.Duration) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}
	cutoff := time.Now().Add(-age)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		zap.L().Info("purged stale temp uploads", zap.Int("count", removed))
	}
	return removed
}

func sanitizeCategory(category string) string {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return "general"
	}
	var b strings.Builder
	for _, r := range category {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "general"
	}
	return b.String()
}
