package service

import (
	"context"
	"errors"
	"testing"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/internal/repository"
)

// fakeStore is an in-memory CredentialStore for pool tests.
type fakeStore struct {
	creds   []model.Credential
	failAll bool
}

func (f *fakeStore) ListActiveBelowThreshold(ctx context.Context, threshold int) ([]model.Credential, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	var out []model.Credential
	for _, c := range f.creds {
		if c.IsActive && c.QuotaUsed < threshold {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]model.Credential, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.creds, nil
}

func (f *fakeStore) IncrementUsage(ctx context.Context, id int64, units int) error {
	for i := range f.creds {
		if f.creds[i].ID == id {
			f.creds[i].QuotaUsed += units
			return nil
		}
	}
	return repository.ErrCredentialNotFound
}

func (f *fakeStore) Deactivate(ctx context.Context, id int64) error {
	for i := range f.creds {
		if f.creds[i].ID == id {
			f.creds[i].IsActive = false
			return nil
		}
	}
	return repository.ErrCredentialNotFound
}

func (f *fakeStore) Insert(ctx context.Context, name, key string) (*model.Credential, error) {
	for _, c := range f.creds {
		if c.Key == key {
			return nil, repository.ErrDuplicateSecret
		}
	}
	cred := model.Credential{ID: int64(len(f.creds) + 1), Name: name, Key: key, IsActive: true}
	f.creds = append(f.creds, cred)
	return &cred, nil
}

func (f *fakeStore) UsageStats(ctx context.Context) ([]model.QuotaUsage, error) {
	var out []model.QuotaUsage
	for _, c := range f.creds {
		if c.IsActive {
			out = append(out, model.QuotaUsage{Name: c.Name, QuotaUsed: c.QuotaUsed})
		}
	}
	return out, nil
}

func (f *fakeStore) ResetAll(ctx context.Context) (int64, error) {
	for i := range f.creds {
		f.creds[i].QuotaUsed = 0
	}
	return int64(len(f.creds)), nil
}

func TestSelectPicksFirstBelowThreshold(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "key-a", QuotaUsed: 8000, IsActive: true},
		{ID: 2, Name: "b", Key: "key-b", QuotaUsed: 7999, IsActive: true},
		{ID: 3, Name: "c", Key: "key-c", QuotaUsed: 0, IsActive: true},
	}}
	svc := NewCredentialService(store, 8000, "fallback-key")

	cred, err := svc.Select(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// id=1 is at the threshold (8000 is not < 8000); id=2 is the first
	// eligible one even with only 1 unit of headroom.
	if cred.ID != 2 {
		t.Errorf("selected id = %d, want 2", cred.ID)
	}
}

func TestSelectSkipsInactive(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "key-a", QuotaUsed: 0, IsActive: false},
		{ID: 2, Name: "b", Key: "key-b", QuotaUsed: 0, IsActive: true},
	}}
	svc := NewCredentialService(store, 8000, "")

	cred, _ := svc.Select(context.Background())
	if cred.ID != 2 {
		t.Errorf("selected id = %d, want 2", cred.ID)
	}
}

func TestSelectFallsBackWhenExhausted(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "key-a", QuotaUsed: 9000, IsActive: true},
	}}
	svc := NewCredentialService(store, 8000, "fallback-key")

	cred, err := svc.Select(context.Background())
	if err != nil {
		t.Fatalf("fallback must not be an error: %v", err)
	}
	if !cred.IsFallback() || cred.Key != "fallback-key" {
		t.Errorf("expected fallback credential, got %+v", cred)
	}
}

func TestSelectFallsBackOnStoreFailure(t *testing.T) {
	svc := NewCredentialService(&fakeStore{failAll: true}, 8000, "fallback-key")

	cred, err := svc.Select(context.Background())
	if err != nil {
		t.Fatalf("store failure must degrade to fallback, got error: %v", err)
	}
	if !cred.IsFallback() {
		t.Errorf("expected fallback credential, got %+v", cred)
	}
}

func TestRecordUsageMetersOnlyPoolCredentials(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "key-a", IsActive: true},
	}}
	svc := NewCredentialService(store, 8000, "fallback-key")

	if err := svc.RecordUsage(context.Background(), 1, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.creds[0].QuotaUsed != 100 {
		t.Errorf("quota used = %d, want 100", store.creds[0].QuotaUsed)
	}

	// Fallback usage (id 0) is a no-op, not an error.
	if err := svc.RecordUsage(context.Background(), 0, 100); err != nil {
		t.Errorf("fallback usage must be a no-op: %v", err)
	}
}

func TestRecordUsageUnknownID(t *testing.T) {
	svc := NewCredentialService(&fakeStore{}, 8000, "")
	err := svc.RecordUsage(context.Background(), 99, 1)
	if !errors.Is(err, repository.ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got %v", err)
	}
}

func TestMarkInvalidDeactivatesButKeepsRow(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "key-a", QuotaUsed: 500, IsActive: true},
	}}
	svc := NewCredentialService(store, 8000, "")

	if err := svc.MarkInvalid(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.creds[0].IsActive {
		t.Error("credential must be inactive after MarkInvalid")
	}
	if len(store.creds) != 1 || store.creds[0].QuotaUsed != 500 {
		t.Error("the row and its history must survive deactivation")
	}
}

func TestCreateRejectsDuplicateSecret(t *testing.T) {
	store := &fakeStore{}
	svc := NewCredentialService(store, 8000, "")

	if _, err := svc.Create(context.Background(), "first", "same-secret-value-12345"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Create(context.Background(), "second", "same-secret-value-12345")
	if !errors.Is(err, repository.ErrDuplicateSecret) {
		t.Errorf("expected ErrDuplicateSecret, got %v", err)
	}
}

func TestStatusSummarizesPool(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "k1", QuotaUsed: 100, IsActive: true},
		{ID: 2, Name: "b", Key: "k2", QuotaUsed: 200, IsActive: true},
		{ID: 3, Name: "c", Key: "k3", QuotaUsed: 300, IsActive: false},
	}}
	svc := NewCredentialService(store, 8000, "")

	st, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Status != "ready" || st.TotalKeys != 3 || st.ActiveKeys != 2 || st.QuotaUsage != 300 {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestStatusNoActiveKeys(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "k1", IsActive: false},
	}}
	svc := NewCredentialService(store, 8000, "")

	st, _ := svc.Status(context.Background())
	if st.Status != "no_keys" {
		t.Errorf("status = %q, want no_keys", st.Status)
	}
}

func TestResetZeroesCounters(t *testing.T) {
	store := &fakeStore{creds: []model.Credential{
		{ID: 1, Name: "a", Key: "k1", QuotaUsed: 5000, IsActive: true},
		{ID: 2, Name: "b", Key: "k2", QuotaUsed: 8000, IsActive: true},
	}}
	svc := NewCredentialService(store, 8000, "")

	n, err := svc.Reset(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("reset count = %d, want 2", n)
	}
	for _, c := range store.creds {
		if c.QuotaUsed != 0 {
			t.Errorf("credential %d still has usage %d", c.ID, c.QuotaUsed)
		}
	}
}
