package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/boardhook/kvstore"
)

const boardUserMapKey = "board_user_map"

// TenantRegistry routes inbound board events to the tenant that owns the board
type TenantRegistry interface {
	MapResource(ctx context.Context, resourceID, tenantID string) error
	LookupTenant(ctx context.Context, resourceID string) (string, bool, error)
	UnmapResource(ctx context.Context, resourceID string) error
}

// tenantRegistry implements TenantRegistry on the keyed store
type tenantRegistry struct {
	kv kvstore.Store
}

// NewTenantRegistry creates a new tenant registry. A nil store maps nothing.
func NewTenantRegistry(kv kvstore.Store) TenantRegistry {
	return &tenantRegistry{kv: kv}
}

// MapResource records tenantID as the owner of resourceID, replacing any previous owner
func (r *tenantRegistry) MapResource(ctx context.Context, resourceID, tenantID string) error {
	if r.kv == nil {
		return nil
	}
	if err := r.kv.HSet(ctx, boardUserMapKey, resourceID, tenantID); err != nil {
		return fmt.Errorf("failed to map board %s: %w", resourceID, err)
	}
	return nil
}

// LookupTenant returns the owner of resourceID. An unmapped resource is not an error.
func (r *tenantRegistry) LookupTenant(ctx context.Context, resourceID string) (string, bool, error) {
	if r.kv == nil || resourceID == "" {
		return "", false, nil
	}
	tenantID, found, err := r.kv.HGet(ctx, boardUserMapKey, resourceID)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up board %s: %w", resourceID, err)
	}
	if !found || tenantID == "" {
		return "", false, nil
	}
	return tenantID, true, nil
}

// UnmapResource removes the owner of resourceID; removing an absent mapping is a no-op
func (r *tenantRegistry) UnmapResource(ctx context.Context, resourceID string) error {
	if r.kv == nil {
		return nil
	}
	if err := r.kv.HDel(ctx, boardUserMapKey, resourceID); err != nil {
		return fmt.Errorf("failed to unmap board %s: %w", resourceID, err)
	}
	return nil
}
