package dto

import "io"

// Attachment is a file sent alongside the sheet. Image and datasheet cells
// refer to it by file name.
type Attachment struct {
	FileName string
	MimeType string
	Open     func() (io.ReadCloser, error)
}

type ImportInput struct {
	FileName    string
	Content     io.Reader
	Attachments []Attachment
}
