package filestorage

import (
	"mime/multipart"
)

// StagedFile describes an upload sitting in the staging area. Its
// AccessiblePath only resolves after Commit has moved it into permanent
// storage.
type StagedFile struct {
	// StagedPath is the absolute filesystem path in the staging area.
	StagedPath string
	// FinalPath is the absolute filesystem path after Commit.
	FinalPath string
	// AccessiblePath is the URL or server-relative path stored in the database.
	AccessiblePath string
	// Filename is the original upload filename.
	Filename string
}

// FileStorage defines the interface for two-phase file storage. Uploads are
// staged first; Commit publishes them and Discard drops them, so a failed
// database transaction never leaves orphaned files behind.
type FileStorage interface {
	// Stage writes an upload into the staging area under an optional subdirectory.
	Stage(fileHeader *multipart.FileHeader, subPath string) (*StagedFile, error)

	// Commit moves staged files into permanent storage.
	Commit(files []*StagedFile) error

	// Discard removes staged files that will never be committed.
	Discard(files []*StagedFile)

	// DeleteFile removes a committed file given its stored accessible path.
	DeleteFile(filePath string) error
}
