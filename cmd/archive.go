package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/mailstash/internal/archiver"
	"github.com/teemow/mailstash/internal/config"
	"github.com/teemow/mailstash/internal/drive"
	"github.com/teemow/mailstash/internal/gmail"
	"github.com/teemow/mailstash/internal/google"
	"github.com/teemow/mailstash/internal/instrumentation"
	"github.com/teemow/mailstash/internal/logging"
)

// destinationFolderName returns the dated folder used when no explicit
// folder is configured, e.g. "08-2026".
func destinationFolderName(now time.Time) string {
	return now.Format("01-2006")
}

func newArchiveCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Run one archiving pass over matching Gmail messages",
		Long: `Search Gmail with the configured query, download attachments whose
extension is on the allow-list, and upload them to the destination Drive
folder. Attachments whose filename already exists at the destination are
skipped.

Individual attachment failures are logged and counted but do not abort the
run; the exit code is non-zero only when configuration or authentication
fails, or when nothing could be processed at all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := logging.WithOperation(logging.New(os.Stderr, level), "archive")

			httpClient, err := google.NewHTTPClient(ctx, cfg.ClientSecretPath, cfg.TokenCachePath)
			if err != nil {
				return fmt.Errorf("failed to authenticate with Google: %w", err)
			}

			gmailClient, err := gmail.NewClient(ctx, httpClient)
			if err != nil {
				return fmt.Errorf("failed to create Gmail client: %w", err)
			}
			driveClient, err := drive.NewClient(ctx, httpClient)
			if err != nil {
				return fmt.Errorf("failed to create Drive client: %w", err)
			}

			folderID := cfg.DriveFolderID
			if folderID == "" {
				name := destinationFolderName(time.Now())
				folderID, err = driveClient.EnsureFolder(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to resolve destination folder %q: %w", name, err)
				}
				logger.Info("resolved destination folder",
					slog.String("folder_name", name),
					logging.FolderID(folderID))
			}

			provider, err := instrumentation.NewProvider(cfg.MetricsEnabled)
			if err != nil {
				return fmt.Errorf("failed to set up metrics: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := provider.Shutdown(shutdownCtx); err != nil {
					logger.Warn("failed to flush metrics", logging.Err(err))
				}
			}()

			metrics, err := instrumentation.NewMetrics(provider.Meter())
			if err != nil {
				return fmt.Errorf("failed to create metrics: %w", err)
			}

			pipeline := &archiver.Pipeline{
				Mailbox:           gmailClient,
				Storage:           driveClient,
				FolderID:          folderID,
				Query:             cfg.SearchQuery,
				AllowedExtensions: cfg.AllowedExtensions,
				Logger:            logger,
				Metrics:           metrics,
			}

			logger.Info("starting run", slog.String(logging.KeyQuery, cfg.SearchQuery))

			summary, err := pipeline.Run(ctx)
			if err != nil {
				return fmt.Errorf("archive run failed: %w", err)
			}

			// Per-attachment failures are reported here but do not change
			// the exit code; re-running is the recovery mechanism.
			logger.Info("run complete",
				slog.Int("messages_scanned", summary.MessagesScanned),
				slog.Int("attachments_found", summary.AttachmentsFound),
				slog.Int("uploaded", summary.Uploaded),
				slog.Int("skipped_duplicate", summary.SkippedDuplicate),
				slog.Int("skipped_extension", summary.SkippedExtension),
				slog.Int("failed", summary.Failed))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}
