package domain

// TokenEnvelope is handed back to the caller after a successful login.
// Timestamps are epoch milliseconds; Lifetime is in seconds.
type TokenEnvelope struct {
	UserID    int64  `json:"user_id"`
	Token     string `json:"token"`
	IssuedAt  int64  `json:"issued_at"`
	Lifetime  int64  `json:"lifetime"`
	ExpiresAt int64  `json:"expires_at"`
}
