package model

import "time"

type Media struct {
	ID        string    `db:"id" json:"id"`
	Hash      string    `db:"hash" json:"hash"`
	FileName  string    `db:"file_name" json:"file_name"`
	MimeType  string    `db:"mime_type" json:"mime_type"`
	Size      int64     `db:"size" json:"size"`
	Path      string    `db:"path" json:"-"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Duplicate bool `db:"-" json:"duplicate"`
}
