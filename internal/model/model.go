package model

import "time"

// ConnectionEntry is a stored remote-access credential. RemotePassword is kept
// as entered; it is shown back to every authenticated user.
type ConnectionEntry struct {
	ID             int64     `json:"id"`
	Name           string    `json:"client_name"`
	RemoteID       string    `json:"anydesk_id"`
	RemotePassword string    `json:"anydesk_password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
