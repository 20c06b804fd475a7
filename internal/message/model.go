package message

import "time"

type Message struct {
	ID       string
	MatchID  string
	SenderID string
	Body     string
	SentAt   time.Time
}
