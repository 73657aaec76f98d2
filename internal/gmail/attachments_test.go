package gmail

import (
	"encoding/base64"
	"testing"

	gmail "google.golang.org/api/gmail/v1"
)

func TestWalkParts(t *testing.T) {
	tests := []struct {
		name          string
		part          *gmail.MessagePart
		expectedParts int
	}{
		{
			name: "single part",
			part: &gmail.MessagePart{
				PartId:   "0",
				MimeType: "text/plain",
			},
			expectedParts: 1,
		},
		{
			name: "nested parts",
			part: &gmail.MessagePart{
				PartId:   "0",
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{PartId: "0.0", MimeType: "text/plain"},
					{PartId: "0.1", MimeType: "text/html"},
				},
			},
			expectedParts: 3, // parent + 2 children
		},
		{
			name: "deeply nested parts",
			part: &gmail.MessagePart{
				PartId:   "0",
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						PartId:   "0.0",
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							{PartId: "0.0.0", MimeType: "text/plain"},
							{PartId: "0.0.1", MimeType: "text/html"},
						},
					},
					{PartId: "0.1", MimeType: "application/pdf"},
				},
			},
			expectedParts: 5, // parent + 2 children + 2 grandchildren
		},
		{
			name:          "nil part",
			part:          nil,
			expectedParts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := 0
			walkParts(tt.part, func(part *gmail.MessagePart) {
				count++
			})

			if count != tt.expectedParts {
				t.Errorf("walkParts() visited %d parts, want %d", count, tt.expectedParts)
			}
		})
	}
}

func TestAttachmentExtraction(t *testing.T) {
	tests := []struct {
		name         string
		payload      *gmail.MessagePart
		wantCount    int
		wantFilename string
	}{
		{
			name: "message with single attachment",
			payload: &gmail.MessagePart{
				PartId:   "1",
				Filename: "document.pdf",
				MimeType: "application/pdf",
				Body: &gmail.MessagePartBody{
					AttachmentId: "att123",
					Size:         1024,
				},
			},
			wantCount:    1,
			wantFilename: "document.pdf",
		},
		{
			name: "message with no attachments",
			payload: &gmail.MessagePart{
				PartId:   "0",
				MimeType: "text/plain",
				Body: &gmail.MessagePartBody{
					Data: base64.URLEncoding.EncodeToString([]byte("Hello")),
				},
			},
			wantCount: 0,
		},
		{
			name: "message with multiple attachments",
			payload: &gmail.MessagePart{
				PartId:   "0",
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						PartId:   "0.0",
						MimeType: "text/plain",
						Body: &gmail.MessagePartBody{
							Data: base64.URLEncoding.EncodeToString([]byte("Body text")),
						},
					},
					{
						PartId:   "0.1",
						Filename: "image.png",
						MimeType: "image/png",
						Body: &gmail.MessagePartBody{
							AttachmentId: "att456",
							Size:         2048,
						},
					},
					{
						PartId:   "0.2",
						Filename: "document.pdf",
						MimeType: "application/pdf",
						Body: &gmail.MessagePartBody{
							AttachmentId: "att789",
							Size:         3072,
						},
					},
				},
			},
			wantCount: 2,
		},
		{
			name: "attachment nested below multipart/alternative",
			payload: &gmail.MessagePart{
				PartId:   "0",
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						PartId:   "0.0",
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							{
								PartId:   "0.0.0",
								MimeType: "text/plain",
								Body: &gmail.MessagePartBody{
									Data: base64.URLEncoding.EncodeToString([]byte("Text")),
								},
							},
						},
					},
					{
						PartId:   "0.1",
						Filename: "file.txt",
						MimeType: "text/plain",
						Body: &gmail.MessagePartBody{
							AttachmentId: "att999",
							Size:         512,
						},
					},
				},
			},
			wantCount: 1,
		},
		{
			name: "filename without attachment id is not an attachment",
			payload: &gmail.MessagePart{
				PartId:   "0",
				Filename: "inline.png",
				MimeType: "image/png",
				Body: &gmail.MessagePartBody{
					Data: base64.URLEncoding.EncodeToString([]byte("inline bytes")),
				},
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attachments []*AttachmentInfo
			walkParts(tt.payload, func(part *gmail.MessagePart) {
				if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
					attachments = append(attachments, &AttachmentInfo{
						MessageID:    "test-msg-id",
						PartID:       part.PartId,
						AttachmentID: part.Body.AttachmentId,
						Filename:     part.Filename,
						MimeType:     part.MimeType,
						Size:         part.Body.Size,
					})
				}
			})

			if len(attachments) != tt.wantCount {
				t.Errorf("found %d attachments, want %d", len(attachments), tt.wantCount)
			}

			if tt.wantCount > 0 && tt.wantFilename != "" {
				if attachments[0].Filename != tt.wantFilename {
					t.Errorf("first attachment filename = %v, want %v", attachments[0].Filename, tt.wantFilename)
				}
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "normal filename",
			filename: "document.pdf",
			want:     "document.pdf",
		},
		{
			name:     "filename with forward slash",
			filename: "path/to/document.pdf",
			want:     "path_to_document.pdf",
		},
		{
			name:     "filename with backslash",
			filename: "path\\to\\document.pdf",
			want:     "path_to_document.pdf",
		},
		{
			name:     "filename with parent directory",
			filename: "../../../etc/passwd",
			want:     "______etc_passwd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.filename); got != tt.want {
				t.Errorf("SanitizeFilename() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBase64Decoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "url base64",
			input: base64.URLEncoding.EncodeToString([]byte("Hello, World!")),
			want:  "Hello, World!",
		},
		{
			name:  "standard base64",
			input: base64.StdEncoding.EncodeToString([]byte("Hello, World!")),
			want:  "Hello, World!",
		},
		{
			name:  "url base64 with special chars",
			input: base64.URLEncoding.EncodeToString([]byte("Special: !@#$%^&*()")),
			want:  "Special: !@#$%^&*()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// URL encoding first (Gmail's default), standard as fallback
			decoded, err := base64.URLEncoding.DecodeString(tt.input)
			if err != nil {
				decoded, err = base64.StdEncoding.DecodeString(tt.input)
			}
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if string(decoded) != tt.want {
				t.Errorf("decoded = %v, want %v", string(decoded), tt.want)
			}
		})
	}
}

func TestMaxAttachmentSize(t *testing.T) {
	const expectedSize = 25 * 1024 * 1024 // 25MB

	if MaxAttachmentSize != expectedSize {
		t.Errorf("MaxAttachmentSize = %d, want %d", MaxAttachmentSize, expectedSize)
	}
}
