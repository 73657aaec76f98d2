package google

import (
	drive "google.golang.org/api/drive/v3"
	gmail "google.golang.org/api/gmail/v1"
)

// Scopes are the Google OAuth scopes the tool requests.
//
// Gmail access is read-only; Drive access is limited to files this tool
// creates (drive.file), so a leaked token cannot touch the rest of the
// user's Drive.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	drive.DriveFileScope,
}
