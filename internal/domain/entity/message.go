package entity

import "time"

type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Content    string
	Timestamp  time.Time
}
