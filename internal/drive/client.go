package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	// DefaultUploadMimeType is used when the caller does not know the
	// content type of the uploaded bytes.
	DefaultUploadMimeType = "application/octet-stream"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
}

// NewClient creates a Google Drive client on top of an OAuth2-authenticated
// HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{service: service}, nil
}

// UploadFile uploads content under the given name into folderID. Multipart
// and resumable transfer mechanics are handled by the client library.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, folderID string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}
	if folderID == "" {
		return nil, fmt.Errorf("folderID is required")
	}

	file := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(DefaultUploadMimeType)).
		Fields("id, name, mimeType, size, createdTime, webViewLink, parents").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file %s: %w", name, err)
	}

	return convertToFileInfo(driveFile), nil
}

// ListFolderFilenames returns the names of all non-trashed files directly
// inside folderID, following pagination to exhaustion.
func (c *Client) ListFolderFilenames(ctx context.Context, folderID string) ([]string, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folderID is required")
	}

	var names []string
	pageToken := ""
	for {
		call := c.service.Files.List().
			Context(ctx).
			Q(buildFolderQuery(folderID)).
			Spaces("drive").
			PageSize(1000).
			Fields("nextPageToken, files(name)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list folder %s: %w", folderID, err)
		}

		for _, f := range fileList.Files {
			names = append(names, f.Name)
		}

		if fileList.NextPageToken == "" {
			return names, nil
		}
		pageToken = fileList.NextPageToken
	}
}

// EnsureFolder returns the ID of a top-level folder with the given name,
// creating it when none exists.
func (c *Client) EnsureFolder(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("folder name is required")
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryTerm(name), FolderMimeType)

	fileList, err := c.service.Files.List().
		Context(ctx).
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %s: %w", name, err)
	}
	if len(fileList.Files) > 0 {
		return fileList.Files[0].Id, nil
	}

	folder := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}
	created, err := c.service.Files.Create(folder).
		Context(ctx).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}

	return created.Id, nil
}

// buildFolderQuery returns the Drive query matching non-trashed children of
// a folder.
func buildFolderQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed = false", escapeQueryTerm(folderID))
}

// escapeQueryTerm escapes a value for embedding in a single-quoted Drive
// query string.
func escapeQueryTerm(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
