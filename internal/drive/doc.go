// Package drive provides a client for the Google Drive API.
//
// It covers the destination side of the pipeline:
//   - Uploading attachment bytes into a folder
//   - Listing the filenames already present in a folder (the duplicate
//     snapshot), paginated to exhaustion
//   - Finding or creating the destination folder by name
//
// Authentication is handled by the google package; this package only takes
// a ready-made *http.Client.
package drive
