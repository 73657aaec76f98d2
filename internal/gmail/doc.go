// Package gmail provides a read-only client for the Gmail API.
//
// The client covers the two operations this tool needs:
//   - Paginated message search (ForeachMessage walks all result pages)
//   - Attachment extraction (ListAttachments walks nested multipart
//     sections; GetAttachment fetches and base64-decodes part bodies)
//
// Authentication is handled by the google package; this package only takes
// a ready-made *http.Client.
package gmail
