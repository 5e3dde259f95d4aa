package services

import (
	"time"

	"github.com/blogem/boardhook/authenticator"
	"github.com/blogem/boardhook/repositories"
	"github.com/blogem/boardhook/trello"
)

var timeNow = func() time.Time {
	return time.Now()
}

// Options selects the deployment mode and the Trello application key
type Options struct {
	MultiTenant  bool
	TrelloAPIKey string
	// TrelloToken is the shared token used in single-tenant mode
	TrelloToken string
	AppURL      string
}

// Services holds all service instances
type Services struct {
	Auth          AuthService
	Boards        BoardService
	Ingest        IngestService
	Subscriptions SubscriptionService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, api trello.API, issuer *authenticator.TokenIssuer, opts Options) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Users, api, issuer, opts),
		Boards:        NewBoardService(api),
		Ingest:        NewIngestService(repos.Tenants, repos.Events, opts.MultiTenant),
		Subscriptions: NewSubscriptionService(repos.Webhooks, repos.Tenants, repos.Events, api, opts.MultiTenant),
	}
}
