// Package storage saves uploaded files to local disk under the static
// uploads directory and hands back the relative path stored in the database.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the extension allow-list applied to an upload.
type Kind int

const (
	KindImage Kind = iota
	KindDocument
	KindVideo
)

var (
	ErrFileTooLarge   = errors.New("storage: file exceeds maximum size")
	ErrUnsupportedExt = errors.New("storage: file extension not allowed")
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var documentExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".webm": true,
}

// Store writes uploads under a base directory, one subfolder per content
// area (news, management, standards, ...).
type Store struct {
	baseDir string
	maxSize int64
}

func NewStore(baseDir string, maxSize int64) *Store {
	return &Store{baseDir: baseDir, maxSize: maxSize}
}

// Save validates the upload against the size limit and the allow-list for
// kind, writes it under baseDir/folder with a random name, and returns the
// path relative to the working directory, forward-slashed.
func (s *Store) Save(fh *multipart.FileHeader, folder string, kind Kind) (string, error) {
	if fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, fh.Size, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	allowed := imageExts
	switch kind {
	case KindDocument:
		allowed = documentExts
	case KindVideo:
		allowed = videoExts
	}
	if !allowed[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}

	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	// Copy with a hard cap so a lying Content-Length cannot blow the limit.
	n, err := io.Copy(out, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if n > s.maxSize {
		_ = os.Remove(dst)
		return "", fmt.Errorf("%w: stream larger than declared size", ErrFileTooLarge)
	}

	return filepath.ToSlash(filepath.Join(s.baseDir, folder, name)), nil
}

// Remove deletes a previously saved file.  Missing files are not an error;
// callers use this for best-effort cleanup when records are replaced.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if !strings.HasPrefix(clean, filepath.Clean(s.baseDir)+string(os.PathSeparator)) {
		return fmt.Errorf("storage: path %q outside upload dir", relPath)
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
