package repositories

import (
	"database/sql"

	"github.com/blogem/boardhook/kvstore"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users    UserRepository
	Webhooks WebhookRepository
	Tenants  TenantRegistry
	Events   EventLog
	Audit    AuditRepository
}

// NewRepositories creates and initializes all repositories.
// kv may be nil, in which case the keyed repositories degrade as documented.
// A nil db leaves Audit nil and auditing off.
func NewRepositories(kv kvstore.Store, db *sql.DB) *Repositories {
	repos := &Repositories{
		Users:    NewUserRepository(kv),
		Webhooks: NewWebhookRepository(kv),
		Tenants:  NewTenantRegistry(kv),
		Events:   NewEventLog(kv),
	}
	if db != nil {
		repos.Audit = NewAuditRepository(db)
	}
	return repos
}
