package cmd

import (
	"testing"
	"time"
)

func TestDestinationFolderName(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "august",
			now:  time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC),
			want: "08-2026",
		},
		{
			name: "single digit month is zero padded",
			now:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: "01-2025",
		},
		{
			name: "december",
			now:  time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: "12-2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := destinationFolderName(tt.now); got != tt.want {
				t.Errorf("destinationFolderName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArchiveCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"archive"})
	if err != nil {
		t.Fatalf("archive command not registered: %v", err)
	}
	if cmd.Name() != "archive" {
		t.Errorf("resolved command = %q, want %q", cmd.Name(), "archive")
	}
}
