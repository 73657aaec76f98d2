package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailstash application
var rootCmd = &cobra.Command{
	Use:   "mailstash",
	Short: "Archives Gmail attachments to a Google Drive folder",
	Long: `mailstash searches your Gmail account for messages matching a configured
query, extracts attachments whose file extension is on an allow-list, and
uploads them to a Google Drive folder. Files already present at the
destination are skipped, so re-running is always safe.

All behavior is driven by environment variables (a .env file in the working
directory is honored).`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailstash version %s\n" .Version}}`)

	// If no subcommand is provided, run the archive command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "archive")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mailstash version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mailstash version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newVersionCmd())
}
