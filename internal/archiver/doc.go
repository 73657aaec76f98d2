// Package archiver contains the pipeline that moves mail attachments into
// cloud storage.
//
// One run is a single sequential pass: snapshot the destination folder's
// filenames, iterate messages matching the search query, extract
// attachments on the extension allow-list, skip names already present, and
// upload the rest. A re-run against an unchanged mailbox uploads nothing,
// which is the tool's only recovery mechanism for partial failures.
package archiver
