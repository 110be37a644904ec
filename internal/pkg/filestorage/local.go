package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

const stagingDirName = ".staging"

// LocalStorage saves files on the local filesystem with a staging area.
type LocalStorage struct {
	basePath    string // root directory for committed files
	stagingPath string // directory holding uploads not yet committed
	baseURL     string // prepended to returned accessible paths when set
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it is prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	stagingPath := filepath.Join(basePath, stagingDirName)
	for _, dir := range []string{basePath, stagingPath} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath:    basePath,
		stagingPath: stagingPath,
		baseURL:     baseURL,
	}, nil
}

// Stage writes the upload into the staging area and computes where it will
// live once committed. Nothing under basePath is touched until Commit.
func (ls *LocalStorage) Stage(fileHeader *multipart.FileHeader, subPath string) (*StagedFile, error) {
	if fileHeader == nil {
		return nil, nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	stagedPath := filepath.Join(ls.stagingPath, uniqueFilename)
	dst, err := os.Create(stagedPath)
	if err != nil {
		logger.Error().Err(err).Str("path", stagedPath).Msg("Failed to create staged file")
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", stagedPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(stagedPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	finalDir := ls.basePath
	if subPath != "" {
		finalDir = filepath.Join(ls.basePath, subPath)
	}

	staged := &StagedFile{
		StagedPath:     stagedPath,
		FinalPath:      filepath.Join(finalDir, uniqueFilename),
		AccessiblePath: ls.accessiblePath(subPath, uniqueFilename),
		Filename:       fileHeader.Filename,
	}

	logger.Debug().Str("filename", fileHeader.Filename).Str("staged_as", uniqueFilename).Msg("File staged")
	return staged, nil
}

// Commit moves staged files into permanent storage. On the first failure any
// files already moved are returned to staging so the caller can Discard them.
func (ls *LocalStorage) Commit(files []*StagedFile) error {
	for i, f := range files {
		if f == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.FinalPath), os.ModePerm); err != nil {
			ls.rollbackCommit(files[:i])
			return fmt.Errorf("failed to create storage subdirectory: %w", err)
		}
		if err := os.Rename(f.StagedPath, f.FinalPath); err != nil {
			logger.Error().Err(err).Str("path", f.StagedPath).Msg("Failed to publish staged file")
			ls.rollbackCommit(files[:i])
			return fmt.Errorf("failed to publish staged file: %w", err)
		}
	}
	return nil
}

func (ls *LocalStorage) rollbackCommit(published []*StagedFile) {
	for _, f := range published {
		if f == nil {
			continue
		}
		if err := os.Rename(f.FinalPath, f.StagedPath); err != nil {
			logger.Error().Err(err).Str("path", f.FinalPath).Msg("Failed to return published file to staging")
		}
	}
}

// Discard removes staged files. Missing files are ignored so Discard is safe
// to call from deferred cleanup paths.
func (ls *LocalStorage) Discard(files []*StagedFile) {
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := os.Remove(f.StagedPath); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", f.StagedPath).Msg("Failed to discard staged file")
		}
	}
}

// DeleteFile removes a committed file from storage. It accepts the accessible
// path as stored in the database. Deleting a missing file is not an error.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	// The accessible path may include a subdirectory before the filename.
	subPath := ""
	if dir := filepath.Base(filepath.Dir(filePath)); dir != "." && dir != "/" && dir != "uploads" && !strings.Contains(dir, ":") {
		subPath = dir
	}

	physicalPath := filepath.Join(ls.basePath, subPath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (ls *LocalStorage) accessiblePath(subPath, filename string) string {
	if ls.baseURL != "" {
		base := strings.TrimRight(ls.baseURL, "/")
		if subPath != "" {
			return base + "/" + subPath + "/" + filename
		}
		return base + "/" + filename
	}
	if subPath != "" {
		return filepath.ToSlash(filepath.Join("uploads", subPath, filename))
	}
	return filepath.ToSlash(filepath.Join("uploads", filename))
}
