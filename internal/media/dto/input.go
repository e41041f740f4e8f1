package dto

import "io"

type UploadInput struct {
	FileName string
	MimeType string
	Content  io.Reader
}
