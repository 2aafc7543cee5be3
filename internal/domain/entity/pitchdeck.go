package entity

import "time"

type PitchDeck struct {
	ID          int64
	StartupID   int64
	Title       string
	Description string
	FileName    string
	ContentType string
	Public      bool
	UploadedAt  time.Time
}
