package model

import "time"

// Credential is an API key metered against the provider's daily quota.
// QuotaUsed only ever grows; an administrative reset is the single way down.
// Invalid credentials are deactivated, never deleted.
type Credential struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	QuotaUsed  int        `json:"quotaUsed"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

// IsFallback reports whether this is the statically configured fallback
// credential rather than a pool entry. The fallback carries no row, so
// usage against it is not metered.
func (c Credential) IsFallback() bool {
	return c.ID == 0
}

// QuotaUsage is one row of the per-credential usage report.
type QuotaUsage struct {
	Name      string `json:"name"`
	QuotaUsed int    `json:"quotaUsed"`
}
