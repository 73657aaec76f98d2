package drive

import (
	"testing"
	"time"

	drive "google.golang.org/api/drive/v3"
)

func TestConvertToFileInfo(t *testing.T) {
	createdTime := "2023-01-01T10:00:00Z"

	driveFile := &drive.File{
		Id:          "file123",
		Name:        "report.pdf",
		MimeType:    "application/pdf",
		Size:        1024,
		CreatedTime: createdTime,
		WebViewLink: "https://drive.google.com/file/d/file123/view",
		Parents:     []string{"folder1"},
	}

	fileInfo := convertToFileInfo(driveFile)

	if fileInfo.ID != "file123" {
		t.Errorf("Expected ID file123, got %s", fileInfo.ID)
	}
	if fileInfo.Name != "report.pdf" {
		t.Errorf("Expected Name report.pdf, got %s", fileInfo.Name)
	}
	if fileInfo.MimeType != "application/pdf" {
		t.Errorf("Expected MimeType application/pdf, got %s", fileInfo.MimeType)
	}
	if fileInfo.Size != 1024 {
		t.Errorf("Expected Size 1024, got %d", fileInfo.Size)
	}
	if fileInfo.WebViewLink != "https://drive.google.com/file/d/file123/view" {
		t.Errorf("Expected WebViewLink, got %s", fileInfo.WebViewLink)
	}
	if len(fileInfo.Parents) != 1 || fileInfo.Parents[0] != "folder1" {
		t.Errorf("Expected parents [folder1], got %v", fileInfo.Parents)
	}

	expectedCreated, _ := time.Parse(time.RFC3339, createdTime)
	if !fileInfo.CreatedTime.Equal(expectedCreated) {
		t.Errorf("Expected CreatedTime %v, got %v", expectedCreated, fileInfo.CreatedTime)
	}
}

func TestConvertToFileInfo_MinimalData(t *testing.T) {
	driveFile := &drive.File{
		Id:       "file456",
		Name:     "minimal.txt",
		MimeType: "text/plain",
	}

	fileInfo := convertToFileInfo(driveFile)

	if fileInfo.ID != "file456" {
		t.Errorf("Expected ID file456, got %s", fileInfo.ID)
	}
	if fileInfo.Size != 0 {
		t.Errorf("Expected Size 0, got %d", fileInfo.Size)
	}
	if !fileInfo.CreatedTime.IsZero() {
		t.Errorf("Expected zero CreatedTime, got %v", fileInfo.CreatedTime)
	}
}

func TestBuildFolderQuery(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		expected string
	}{
		{
			name:     "plain folder id",
			folderID: "abc123",
			expected: "'abc123' in parents and trashed = false",
		},
		{
			name:     "folder id with single quote",
			folderID: "ab'c",
			expected: `'ab\'c' in parents and trashed = false`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildFolderQuery(tt.folderID)
			if result != tt.expected {
				t.Errorf("buildFolderQuery(%q) = %q, want %q", tt.folderID, result, tt.expected)
			}
		})
	}
}

func TestEscapeQueryTerm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no special characters",
			input: "report.pdf",
			want:  "report.pdf",
		},
		{
			name:  "single quote",
			input: "o'brien.pdf",
			want:  `o\'brien.pdf`,
		},
		{
			name:  "backslash",
			input: `back\slash.txt`,
			want:  `back\\slash.txt`,
		},
		{
			name:  "backslash before quote",
			input: `tricky\'.txt`,
			want:  `tricky\\\'.txt`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeQueryTerm(tt.input); got != tt.want {
				t.Errorf("escapeQueryTerm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFolderMimeType(t *testing.T) {
	expectedMimeType := "application/vnd.google-apps.folder"
	if FolderMimeType != expectedMimeType {
		t.Errorf("Expected FolderMimeType %s, got %s", expectedMimeType, FolderMimeType)
	}
}
