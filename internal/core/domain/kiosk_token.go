package domain

import "time"

// KioskToken authenticates a shared clock terminal for one company.
type KioskToken struct {
	TokenID    string     `json:"tokenID" db:"token_id"`
	CompanyID  string     `json:"companyID" db:"company_id"`
	Name       string     `json:"name" db:"name"`
	SecretHash string     `json:"-" db:"secret_hash"` // bcrypt; never exposed
	CreatedBy  string     `json:"createdBy" db:"created_by"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty" db:"last_used_at"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty" db:"revoked_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// IsUsable reports whether the token may authenticate at t.
func (t *KioskToken) IsUsable(at time.Time) bool {
	if t.RevokedAt != nil {
		return false
	}
	return t.ExpiresAt == nil || t.ExpiresAt.After(at)
}
