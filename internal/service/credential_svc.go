package service

import (
	"context"
	"log"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/pkg/hash"
)

// DefaultQuotaThreshold is the per-credential daily budget below which a
// credential is still eligible for selection.
const DefaultQuotaThreshold = 8000

// CredentialStore is the durable store behind the pool. Quota counters
// live in the store and are incremented there atomically; the service
// never read-modify-writes them.
type CredentialStore interface {
	ListActiveBelowThreshold(ctx context.Context, threshold int) ([]model.Credential, error)
	ListAll(ctx context.Context) ([]model.Credential, error)
	IncrementUsage(ctx context.Context, id int64, units int) error
	Deactivate(ctx context.Context, id int64) error
	Insert(ctx context.Context, name, key string) (*model.Credential, error)
	UsageStats(ctx context.Context) ([]model.QuotaUsage, error)
	ResetAll(ctx context.Context) (int64, error)
}

// CredentialService is the multi-credential quota pool. Selection reads
// fresh counters from the store on every call; there is no process-local
// rotation pointer.
type CredentialService struct {
	store     CredentialStore
	threshold int
	fallback  model.Credential
}

func NewCredentialService(store CredentialStore, threshold int, fallbackKey string) *CredentialService {
	if threshold <= 0 {
		threshold = DefaultQuotaThreshold
	}
	return &CredentialService{
		store:     store,
		threshold: threshold,
		fallback:  model.Credential{Name: "fallback", Key: fallbackKey},
	}
}

// Select returns the first active credential under the quota threshold,
// ordered by ascending id. When none qualifies (or the store is down) it
// returns the configured fallback without error; callers must treat the
// fallback as best-effort since it may itself be over quota.
func (s *CredentialService) Select(ctx context.Context) (model.Credential, error) {
	creds, err := s.store.ListActiveBelowThreshold(ctx, s.threshold)
	if err != nil {
		log.Printf("credential-pool: store error, using fallback: %v", err)
		return s.fallback, nil
	}
	if len(creds) == 0 {
		log.Printf("credential-pool: no credential below threshold %d, using fallback", s.threshold)
		return s.fallback, nil
	}
	return creds[0], nil
}

// RecordUsage adds the caller-reported unit cost to a credential's
// counter. Usage against the fallback is not metered.
func (s *CredentialService) RecordUsage(ctx context.Context, id int64, units int) error {
	if id == 0 {
		return nil
	}
	return s.store.IncrementUsage(ctx, id, units)
}

// MarkInvalid deactivates a credential after the provider rejected its
// secret. The row survives for audit; only selection stops seeing it.
func (s *CredentialService) MarkInvalid(ctx context.Context, id int64) error {
	if id == 0 {
		return nil
	}
	log.Printf("credential-pool: deactivating credential %d", id)
	return s.store.Deactivate(ctx, id)
}

// Create registers a new credential with a zeroed counter. Duplicate
// secrets are rejected by the store.
func (s *CredentialService) Create(ctx context.Context, name, key string) (*model.Credential, error) {
	cred, err := s.store.Insert(ctx, name, key)
	if err != nil {
		return nil, err
	}
	log.Printf("credential-pool: registered credential %d (%s)", cred.ID, hash.SecretFingerprint(cred.Key))
	return cred, nil
}

// List returns every credential in the pool.
func (s *CredentialService) List(ctx context.Context) ([]model.Credential, error) {
	return s.store.ListAll(ctx)
}

// Remove deactivates a credential by admin request. Deactivation, not
// deletion: quota history stays queryable.
func (s *CredentialService) Remove(ctx context.Context, id int64) error {
	return s.store.Deactivate(ctx, id)
}

// UsageStats returns the per-credential usage report.
func (s *CredentialService) UsageStats(ctx context.Context) ([]model.QuotaUsage, error) {
	return s.store.UsageStats(ctx)
}

// PoolStatus summarizes pool health for the admin status endpoint.
type PoolStatus struct {
	Status     string `json:"status"`
	ActiveKeys int    `json:"activeKeys"`
	TotalKeys  int    `json:"totalKeys"`
	QuotaUsage int    `json:"quotaUsage"`
}

// Status reports how many credentials are registered, how many remain
// active and the summed usage across active ones.
func (s *CredentialService) Status(ctx context.Context) (*PoolStatus, error) {
	creds, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	st := &PoolStatus{TotalKeys: len(creds)}
	for _, c := range creds {
		if c.IsActive {
			st.ActiveKeys++
			st.QuotaUsage += c.QuotaUsed
		}
	}
	if st.ActiveKeys == 0 {
		st.Status = "no_keys"
	} else {
		st.Status = "ready"
	}
	return st, nil
}

// Reset zeroes every counter. Administrative escape hatch for the
// provider's daily quota rollover; nothing calls it automatically.
func (s *CredentialService) Reset(ctx context.Context) (int64, error) {
	n, err := s.store.ResetAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("credential-pool: reset quota counters on %d credentials", n)
	return n, nil
}
