package domain

import "time"

type AccountID int64

// Credential is the authentication record for one account. Email is the key
// the rest of the system joins on. RefreshToken holds the single live refresh
// token for the account, empty when signed out.
type Credential struct {
	ID           AccountID
	Email        string
	PasswordHash string
	RefreshToken string
	CreatedAt    time.Time
}
