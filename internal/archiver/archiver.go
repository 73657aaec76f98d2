package archiver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/teemow/mailstash/internal/dedup"
	"github.com/teemow/mailstash/internal/drive"
	"github.com/teemow/mailstash/internal/gmail"
	"github.com/teemow/mailstash/internal/instrumentation"
	"github.com/teemow/mailstash/internal/logging"
)

// Mailbox is the message-side dependency of the pipeline, implemented by
// the gmail client.
type Mailbox interface {
	ForeachMessage(ctx context.Context, query string, fn func(messageID string) error) error
	ListAttachments(ctx context.Context, messageID string) ([]*gmail.AttachmentInfo, error)
	GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error)
}

// Storage is the destination-side dependency of the pipeline, implemented
// by the drive client.
type Storage interface {
	ListFolderFilenames(ctx context.Context, folderID string) ([]string, error)
	UploadFile(ctx context.Context, name string, content io.Reader, folderID string) (*drive.FileInfo, error)
}

// Summary reports what a run did.
type Summary struct {
	MessagesScanned  int
	AttachmentsFound int
	Uploaded         int
	SkippedDuplicate int
	SkippedExtension int
	Failed           int
}

// Pipeline drives one archiving run: snapshot the destination folder, walk
// matching messages, filter attachments by extension, skip duplicates,
// upload the rest. Strictly sequential.
type Pipeline struct {
	Mailbox  Mailbox
	Storage  Storage
	FolderID string
	Query    string

	// AllowedExtensions is the normalized allow-list (lower-case, leading
	// dot).
	AllowedExtensions []string

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// Run executes the pipeline. Failures before any item processing (the
// destination snapshot, a search result page) are returned as errors;
// failures on a single message or attachment are logged, counted in the
// summary, and skipped.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	names, err := p.Storage.ListFolderFilenames(ctx, p.FolderID)
	if err != nil {
		return summary, fmt.Errorf("failed to snapshot destination folder: %w", err)
	}
	idx := dedup.NewIndex(names)

	p.Logger.Info("destination folder snapshot loaded",
		logging.FolderID(p.FolderID),
		slog.Int("existing_files", idx.Len()))

	err = p.Mailbox.ForeachMessage(ctx, p.Query, func(messageID string) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.processMessage(ctx, idx, messageID, &summary)
		return nil
	})
	if err != nil {
		// fn never returns an error, so this is a failed search page (or
		// cancellation); nothing further can be enumerated.
		return summary, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return summary, nil
}

// processMessage handles a single message. Errors are recorded in the
// summary; they never propagate, so one bad message cannot end the run.
func (p *Pipeline) processMessage(ctx context.Context, idx *dedup.Index, messageID string, summary *Summary) {
	logger := p.Logger.With(logging.MessageID(messageID))

	summary.MessagesScanned++
	p.Metrics.RecordMessageScanned(ctx)

	attachments, err := p.Mailbox.ListAttachments(ctx, messageID)
	if err != nil {
		summary.Failed++
		logger.Error("failed to inspect message",
			logging.Err(err),
			remoteStatus(err))
		return
	}

	for _, att := range attachments {
		summary.AttachmentsFound++
		p.Metrics.RecordAttachmentFound(ctx)

		name := gmail.SanitizeFilename(att.Filename)
		logger := logger.With(logging.Filename(name))

		if !extensionAllowed(att.Filename, p.AllowedExtensions) {
			summary.SkippedExtension++
			p.Metrics.RecordSkip(ctx, instrumentation.SkipReasonExtension)
			logger.Debug("skipping attachment", logging.Status(logging.StatusSkipped),
				slog.String("reason", "extension not allowed"))
			continue
		}

		if idx.Contains(name) {
			summary.SkippedDuplicate++
			p.Metrics.RecordSkip(ctx, instrumentation.SkipReasonDuplicate)
			logger.Info("skipping attachment", logging.Status(logging.StatusSkipped),
				slog.String("reason", "already in destination folder"))
			continue
		}

		data, err := p.Mailbox.GetAttachment(ctx, messageID, att.AttachmentID)
		if err != nil {
			summary.Failed++
			logger.Error("failed to fetch attachment",
				logging.Err(err),
				remoteStatus(err))
			continue
		}

		info, err := p.Storage.UploadFile(ctx, name, bytes.NewReader(data), p.FolderID)
		if err != nil {
			summary.Failed++
			p.Metrics.RecordUpload(ctx, logging.StatusError)
			logger.Error("failed to upload attachment",
				logging.Err(err),
				remoteStatus(err))
			continue
		}

		// Keep the snapshot consistent so a same-named attachment later in
		// this run is caught.
		idx.Add(name)
		summary.Uploaded++
		p.Metrics.RecordUpload(ctx, logging.StatusSuccess)
		logger.Info("uploaded attachment", logging.Status(logging.StatusSuccess),
			slog.String("file_id", info.ID),
			slog.Int("size_bytes", len(data)))
	}
}

// extensionAllowed reports whether the filename ends with one of the
// normalized allow-list entries, case-insensitively. Suffix matching keeps
// compound entries like ".tar.gz" working.
func extensionAllowed(filename string, allowed []string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range allowed {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// remoteStatus extracts the provider's HTTP status code for logging, or a
// zero attribute when the error carries none.
func remoteStatus(err error) slog.Attr {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return slog.Int("http_status", apiErr.Code)
	}
	return slog.Group("")
}
