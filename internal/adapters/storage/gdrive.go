package storage

import (
	"bangerbot/internal/adapters/file"
	"bangerbot/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	FolderMimeType  = "application/vnd.google-apps.folder"
	UploadChunkSize = 1024 * 1024
)

// Drive stores files in Google Drive, below rootFolderID when set and in "My Drive" otherwise.
type Drive struct {
	service      *drive.Service
	rootFolderID string
}

func NewDrive(ctx context.Context, rootFolderID string, opts ...option.ClientOption) (*Drive, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating drive service: %w", err)
	}

	return &Drive{service: service, rootFolderID: rootFolderID}, nil
}

// EnsureFolder looks a folder up by name and creates it when there is none. An empty name
// resolves to the root folder.
func (d *Drive) EnsureFolder(ctx context.Context, name string) (string, error) {
	if name == "" {
		return d.rootFolderID, nil
	}

	l := log.With().Str("folder", name).Logger()

	list, err := d.service.Files.List().
		Q(folderQuery(name, d.rootFolderID)).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		l.Error().Err(err).Msg("failed to list folders")
		return "", fmt.Errorf("%w: %w", domain.ErrFolderCreateFailed, err)
	}

	if len(list.Files) > 0 {
		l.Debug().Str("folderId", list.Files[0].Id).Msg("found folder")
		return list.Files[0].Id, nil
	}

	folder, err := d.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  d.parents(""),
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		l.Error().Err(err).Msg("failed to create folder")
		return "", fmt.Errorf("%w: %w", domain.ErrFolderCreateFailed, err)
	}

	l.Info().Str("folderId", folder.Id).Msg("created folder")

	return folder.Id, nil
}

// Upload pushes the file in chunks and removes it locally once Drive accepted it.
func (d *Drive) Upload(ctx context.Context, request domain.UploadRequest, progress func(percent int)) error {
	if request.Title == "" || request.MimeType == "" {
		return fmt.Errorf("%w: title %q, mime type %q", domain.ErrInvalidMetadata, request.Title, request.MimeType)
	}

	l := log.With().Str("path", request.Path).Str("title", request.Title).Logger()

	f, err := os.Open(request.Path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrFileNotFound, request.Path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}
	size := stat.Size()

	uploaded, err := d.service.Files.Create(&drive.File{
		Name:     fileName(request.Title, request.Path),
		MimeType: request.MimeType,
		Parents:  d.parents(request.FolderID),
	}).
		Media(f, googleapi.ContentType(request.MimeType), googleapi.ChunkSize(UploadChunkSize)).
		ProgressUpdater(func(current, _ int64) {
			if progress != nil && size > 0 {
				progress(int(current * 100 / size))
			}
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		l.Error().Err(err).Msg("drive upload failed")

		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return fmt.Errorf("%w: %w", domain.ErrInvalidMetadata, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	if progress != nil {
		progress(100)
	}

	l.Info().Str("fileId", uploaded.Id).Int64("bytes", size).Msg("uploaded file")

	_ = f.Close()
	_ = file.Remove(request.Path)

	return nil
}

func (d *Drive) parents(folderID string) []string {
	if folderID != "" {
		return []string{folderID}
	}
	if d.rootFolderID != "" {
		return []string{d.rootFolderID}
	}
	return nil
}

func folderQuery(name, parentID string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)

	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escaped, FolderMimeType)
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", parentID)
	}
	return q
}

// fileName appends the extension of path to title unless title already ends with it.
func fileName(title, path string) string {
	ext := filepath.Ext(path)
	if ext == "" || strings.HasSuffix(strings.ToLower(title), strings.ToLower(ext)) {
		return title
	}
	return title + ext
}
