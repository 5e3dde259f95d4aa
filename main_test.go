package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/boardhook/authenticator"
	"github.com/blogem/boardhook/config"
	"github.com/blogem/boardhook/controllers"
	"github.com/blogem/boardhook/database"
	"github.com/blogem/boardhook/kvstore"
	"github.com/blogem/boardhook/models"
	"github.com/blogem/boardhook/repositories"
	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/trello"
	trellomocks "github.com/blogem/boardhook/trello/mocks"
)

const cardMovedOnB1 = `{
	"action": {
		"type": "updateCard",
		"memberCreator": {"fullName": "Ana"},
		"data": {
			"card": {"name": "Fix bug"},
			"listBefore": {"name": "Doing"},
			"listAfter": {"name": "Done"},
			"board": {"id": "B1", "name": "Sprint"}
		}
	},
	"model": {"id": "B1"}
}`

const cardMovedOnB2 = `{"action":{"type":"updateCard","data":{"card":{"name":"Other"},"board":{"id":"B2"}}},"model":{"id":"B2"}}`

// fakeProvider stands in for the identity provider
type fakeProvider struct{}

func (fakeProvider) GetAuthURL(state string) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state)
}

func (fakeProvider) ExchangeCode(ctx context.Context, code string) (*authenticator.Token, error) {
	if code != "good-code" {
		return nil, errors.New("invalid_grant")
	}
	return &authenticator.Token{AccessToken: "at", IDToken: "id"}, nil
}

func (fakeProvider) GetClaims(ctx context.Context, token *authenticator.Token) (authenticator.Claims, error) {
	return authenticator.Claims{"email": "sso@example.com", "email_verified": true, "name": "Sso User"}, nil
}

// RouterTestSuite drives the full router over an in-memory Redis and a mocked Trello
type RouterTestSuite struct {
	suite.Suite
	cfg      config.Config
	provider authenticator.Provider
	db       *sql.DB
	kv       kvstore.Store
	api      *trellomocks.MockAPI
	handler  http.Handler
}

func testConfig(mode string) config.Config {
	return config.Config{
		AuthMode:        mode,
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		TrelloAPIKey:    "app-key",
		TrelloToken:     "shared-token",
		MaxUploadBytes:  1 << 20,
		RequestTimeout:  5 * time.Second,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: time.Second,
	}
}

func (s *RouterTestSuite) build() {
	mr := miniredis.RunT(s.T())
	s.kv = kvstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	s.T().Cleanup(func() { s.kv.Close() })
	s.api = trellomocks.NewMockAPI(s.T())

	repos := repositories.NewRepositories(s.kv, s.db)
	srvs := services.NewServices(repos, s.api, authenticator.NewTokenIssuer(s.cfg.JWTSecret, s.cfg.TokenTTL), services.Options{
		MultiTenant:  s.cfg.MultiTenant(),
		TrelloAPIKey: s.cfg.TrelloAPIKey,
		TrelloToken:  s.cfg.TrelloToken,
		AppURL:       s.cfg.AppURL,
	})
	ctrl := controllers.NewControllers(srvs, s.provider, s.cfg.MaxUploadBytes)

	router, err := setupRouter(s.cfg, ctrl, srvs, repos)
	s.Require().NoError(err)
	s.handler = router
}

func (s *RouterTestSuite) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) doJSON(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return s.do(method, target, token, reader, "application/json")
}

func (s *RouterTestSuite) events(token string) models.EventPage {
	rec := s.doJSON(http.MethodGet, "/api/webhooks/events", token, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var page models.EventPage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

// register creates an account and connects a Trello token, returning the bearer token
func (s *RouterTestSuite) register(email, trelloToken string) string {
	rec := s.doJSON(http.MethodPost, "/api/auth/register", "",
		`{"email":"`+email+`","password":"secret","name":"Test"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result models.AuthResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))

	s.api.EXPECT().GetMember(mock.Anything, trello.Credential{Key: "app-key", Token: trelloToken}).
		Return(&models.TrelloMember{FullName: "Test", Username: "test"}, nil).Once()
	rec = s.doJSON(http.MethodPost, "/api/auth/connect-trello", result.Token, `{"trelloToken":"`+trelloToken+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	return result.Token
}

// SingleTenantSuite runs the router without accounts
type SingleTenantSuite struct {
	RouterTestSuite
}

func (s *SingleTenantSuite) SetupTest() {
	s.cfg = testConfig(config.AuthModeSingle)
	s.provider = nil
	s.db = nil
	s.build()
}

func TestSingleTenantSuite(t *testing.T) {
	suite.Run(t, new(SingleTenantSuite))
}

func (s *SingleTenantSuite) TestHealth() {
	rec := s.doJSON(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"healthy"`)
}

func (s *SingleTenantSuite) TestWebhookHeadNeverAppends() {
	for _, path := range webhookPaths {
		rec := s.do(http.MethodHead, path, "", nil, "")
		s.Equal(http.StatusOK, rec.Code, path)
	}

	page := s.events("")
	s.Equal(int64(0), page.Version)
	s.Empty(page.Events)
	s.NotNil(page.Events)
}

func (s *SingleTenantSuite) TestWebhookPostAppendsToSharedLog() {
	rec := s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB1), "application/json")
	s.Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, "/webhooks/trello", "", strings.NewReader(cardMovedOnB2), "application/json")
	s.Equal(http.StatusOK, rec.Code)

	page := s.events("")
	s.Equal(int64(2), page.Version)
	s.Require().Len(page.Events, 2)
	s.Equal("Other", *page.Events[0].Card)
	s.Equal("Fix bug", *page.Events[1].Card)
	s.Equal("Ana", page.Events[1].MemberCreator)
	s.Equal("Done", *page.Events[1].ListAfter)
}

func (s *SingleTenantSuite) TestWebhookGarbageIsAcknowledged() {
	rec := s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader("{not json"), "application/json")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(int64(0), s.events("").Version)
}

func (s *SingleTenantSuite) TestWebhookOtherMethods() {
	rec := s.do(http.MethodPut, "/api/webhooks/trello", "", nil, "")

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.JSONEq(`{"error":"Method not allowed"}`, rec.Body.String())
}

func (s *SingleTenantSuite) TestEventsRejectsBadSince() {
	rec := s.doJSON(http.MethodGet, "/api/webhooks/events?since=abc", "", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *SingleTenantSuite) TestEventsIgnoresSince() {
	s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB1), "application/json")

	rec := s.doJSON(http.MethodGet, "/api/webhooks/events?since=1", "", "")

	s.Equal(http.StatusOK, rec.Code)
	var page models.EventPage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	s.Len(page.Events, 1)
}

func (s *SingleTenantSuite) TestMeIsSharedAccount() {
	rec := s.doJSON(http.MethodGet, "/api/auth/me", "", "")

	s.Equal(http.StatusOK, rec.Code)
	var profile models.Profile
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &profile))
	s.Equal(models.GlobalTenant, profile.Email)
	s.True(profile.TrelloConnected)
}

func (s *SingleTenantSuite) TestAccountRoutesAreAbsent() {
	rec := s.doJSON(http.MethodPost, "/api/auth/login", "", `{"email":"a@b.co","password":"x"}`)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *SingleTenantSuite) TestRegisterWebhookUsesSharedToken() {
	s.api.EXPECT().
		CreateSubscription(mock.Anything, trello.Credential{Key: "app-key", Token: "shared-token"}, "https://app/api/webhooks/trello", "B1").
		Return(&models.Subscription{ID: "W1", IDModel: "B1"}, nil)

	rec := s.doJSON(http.MethodPost, "/api/webhooks/register", "", `{"callbackURL":"https://app/api/webhooks/trello","boardId":"B1"}`)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("W1", body["id"])
	s.Equal("W1", body["webhookId"])
	s.Equal("B1", body["boardId"])

	rec = s.doJSON(http.MethodGet, "/api/webhooks/list", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"B1"`)
}

func (s *SingleTenantSuite) TestRegisterWebhookValidation() {
	rec := s.doJSON(http.MethodPost, "/api/webhooks/register", "", `{"boardId":"B1"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error":"callbackURL and boardId are required"}`, rec.Body.String())
}

func (s *SingleTenantSuite) TestUpstreamErrorIsRelayed() {
	s.api.EXPECT().ListBoards(mock.Anything, mock.Anything).
		Return(nil, &trello.APIError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"message":"invalid token"}`)})

	rec := s.doJSON(http.MethodGet, "/api/boards", "", "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"error":{"message":"invalid token"}}`, rec.Body.String())
}

func (s *SingleTenantSuite) TestUpstreamPlainTextError() {
	s.api.EXPECT().GetCardDetail(mock.Anything, mock.Anything, "C404").
		Return(nil, &trello.APIError{StatusCode: http.StatusNotFound, Body: []byte("The requested resource was not found.")})

	rec := s.doJSON(http.MethodGet, "/api/cards/C404", "", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"The requested resource was not found."}`, rec.Body.String())
}

func (s *SingleTenantSuite) TestBoardAndCardProxy() {
	s.api.EXPECT().ListBoardContents(mock.Anything, mock.Anything, "B1").
		Return(json.RawMessage(`[{"id":"L1","name":"Doing","cards":[]}]`), nil)
	s.api.EXPECT().MoveCard(mock.Anything, mock.Anything, "C1", "L2").
		Return(json.RawMessage(`{"id":"C1","idList":"L2"}`), nil)
	s.api.EXPECT().AddComment(mock.Anything, mock.Anything, "C1", "looks good").
		Return(json.RawMessage(`{"id":"A1"}`), nil)

	rec := s.doJSON(http.MethodGet, "/api/boards/B1", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[{"id":"L1","name":"Doing","cards":[]}]`, rec.Body.String())

	rec = s.doJSON(http.MethodPut, "/api/cards/C1/move", "", `{"listId":"L2"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/cards/C1/comments", "", `{"text":"looks good"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/cards/C1/comments", "", `{"text":""}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.doJSON(http.MethodPut, "/api/cards/C1/move", "", `{bad`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *SingleTenantSuite) TestAttachment() {
	s.api.EXPECT().
		AddAttachment(mock.Anything, mock.Anything, "C1", trello.File{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")}).
		Return(json.RawMessage(`{"id":"att1"}`), nil)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := form.CreatePart(header)
	s.Require().NoError(err)
	_, _ = part.Write([]byte("hello"))
	s.Require().NoError(form.Close())

	rec := s.do(http.MethodPost, "/api/cards/C1/attachments", "", &body, form.FormDataContentType())

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.JSONEq(`{"id":"att1"}`, rec.Body.String())
}

func (s *SingleTenantSuite) TestAttachmentMissingFile() {
	rec := s.doJSON(http.MethodPost, "/api/cards/C1/attachments", "", `{}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error":"file is required"}`, rec.Body.String())
}

func (s *SingleTenantSuite) TestDashboard() {
	for i := 0; i < 7; i++ {
		s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB1), "application/json")
	}

	rec := s.doJSON(http.MethodGet, "/api/dashboard", "", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var data controllers.DashboardData
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &data))
	s.Equal(int64(7), data.Version)
	s.Len(data.RecentEvents, 5)
	s.Equal(7, data.RetainedCount)
	s.Equal(models.GlobalTenant, data.User.Email)
}

// MultiTenantSuite runs the router with accounts, routing and an audit database
type MultiTenantSuite struct {
	RouterTestSuite
}

func (s *MultiTenantSuite) SetupTest() {
	s.cfg = testConfig(config.AuthModeMulti)
	s.provider = fakeProvider{}
	db, err := database.InitializeDatabase(":memory:")
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })
	s.db = db
	s.build()
}

func TestMultiTenantSuite(t *testing.T) {
	suite.Run(t, new(MultiTenantSuite))
}

func (s *MultiTenantSuite) TestProtectedRoutesNeedToken() {
	for _, target := range []string{"/api/webhooks/events", "/api/auth/me", "/api/boards", "/api/dashboard"} {
		rec := s.doJSON(http.MethodGet, target, "", "")
		s.Equal(http.StatusUnauthorized, rec.Code, target)
	}

	rec := s.doJSON(http.MethodGet, "/api/auth/me", "not-a-jwt", "")
	s.JSONEq(`{"error":"Invalid or expired token"}`, rec.Body.String())
}

func (s *MultiTenantSuite) TestPublicConfig() {
	rec := s.doJSON(http.MethodGet, "/api/auth/config", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"trelloApiKey":"app-key","appUrl":""}`, rec.Body.String())
}

func (s *MultiTenantSuite) TestRegisterLoginAndMe() {
	token := s.register("ana@example.com", "ana-trello")

	rec := s.doJSON(http.MethodPost, "/api/auth/register", "", `{"email":"ana@example.com","password":"x","name":"Ana"}`)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/auth/login", "", `{"email":"ana@example.com","password":"wrong"}`)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"error":"Invalid email or password"}`, rec.Body.String())

	rec = s.doJSON(http.MethodPost, "/api/auth/login", "", `{"email":"ana@example.com","password":"secret"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodGet, "/api/auth/me", token, "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"email":"ana@example.com","name":"Test","avatar":"","trelloConnected":true}`, rec.Body.String())

	rec = s.doJSON(http.MethodPost, "/api/auth/avatar", token, `{"avatar":"data:image/png;base64,AA"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"success":true,"avatar":"data:image/png;base64,AA"}`, rec.Body.String())
}

func (s *MultiTenantSuite) TestConnectTrelloRejected() {
	rec := s.doJSON(http.MethodPost, "/api/auth/register", "", `{"email":"ana@example.com","password":"secret","name":"Ana"}`)
	var result models.AuthResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.api.EXPECT().GetMember(mock.Anything, mock.Anything).
		Return(nil, &trello.APIError{StatusCode: http.StatusUnauthorized, Body: []byte("invalid token")})

	rec = s.doJSON(http.MethodPost, "/api/auth/connect-trello", result.Token, `{"trelloToken":"bad"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error":"Invalid Trello token"}`, rec.Body.String())

	rec = s.doJSON(http.MethodGet, "/api/boards", result.Token, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.JSONEq(`{"error":"Trello account not connected"}`, rec.Body.String())
}

func (s *MultiTenantSuite) TestEventsAreRoutedToTheBoardOwner() {
	ana := s.register("ana@example.com", "ana-trello")
	bob := s.register("bob@example.com", "bob-trello")

	s.api.EXPECT().
		CreateSubscription(mock.Anything, trello.Credential{Key: "app-key", Token: "ana-trello"}, "https://app/api/webhooks/trello", "B1").
		Return(&models.Subscription{ID: "W1", IDModel: "B1"}, nil)
	rec := s.doJSON(http.MethodPost, "/api/webhooks/register", ana, `{"callbackURL":"https://app/api/webhooks/trello","boardId":"B1"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	// a delivery for a board nobody registered is acknowledged and dropped
	rec = s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB2), "application/json")
	s.Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB1), "application/json")
	s.Equal(http.StatusOK, rec.Code)

	anaPage := s.events(ana)
	s.Equal(int64(1), anaPage.Version)
	s.Require().Len(anaPage.Events, 1)
	s.Equal("Fix bug", *anaPage.Events[0].Card)

	bobPage := s.events(bob)
	s.Equal(int64(0), bobPage.Version)
	s.Empty(bobPage.Events)
}

func (s *MultiTenantSuite) TestUnregisterStopsRouting() {
	ana := s.register("ana@example.com", "ana-trello")
	s.api.EXPECT().CreateSubscription(mock.Anything, mock.Anything, "https://app/cb", "B1").
		Return(&models.Subscription{ID: "W1"}, nil)
	s.api.EXPECT().DeleteSubscription(mock.Anything, mock.Anything, "W1").
		Return(&trello.APIError{StatusCode: http.StatusNotFound})

	rec := s.doJSON(http.MethodPost, "/api/webhooks/register", ana, `{"callbackURL":"https://app/cb","boardId":"B1"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodDelete, "/api/webhooks/W1", ana, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.JSONEq(`{"success":true}`, rec.Body.String())

	s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB1), "application/json")
	s.Equal(int64(0), s.events(ana).Version)

	rec = s.doJSON(http.MethodGet, "/api/webhooks/list", ana, "")
	s.JSONEq(`{}`, rec.Body.String())
}

func (s *MultiTenantSuite) TestLastRegistrantOwnsBoard() {
	ana := s.register("ana@example.com", "ana-trello")
	bob := s.register("bob@example.com", "bob-trello")
	s.api.EXPECT().CreateSubscription(mock.Anything, mock.Anything, "https://app/cb", "B1").
		Return(&models.Subscription{ID: "W1"}, nil).Once()
	s.api.EXPECT().CreateSubscription(mock.Anything, mock.Anything, "https://app/cb", "B1").
		Return(&models.Subscription{ID: "W2"}, nil).Once()

	s.doJSON(http.MethodPost, "/api/webhooks/register", ana, `{"callbackURL":"https://app/cb","boardId":"B1"}`)
	s.doJSON(http.MethodPost, "/api/webhooks/register", bob, `{"callbackURL":"https://app/cb","boardId":"B1"}`)
	s.do(http.MethodPost, "/api/webhooks/trello", "", strings.NewReader(cardMovedOnB1), "application/json")

	s.Equal(int64(0), s.events(ana).Version)
	s.Equal(int64(1), s.events(bob).Version)
}

func (s *MultiTenantSuite) TestMutationsAreAudited() {
	s.doJSON(http.MethodPost, "/api/auth/login", "", `{"email":"ana@example.com","password":"secret"}`)

	s.Eventually(func() bool {
		var count int
		err := s.db.QueryRow(`SELECT COUNT(*) FROM audit_log WHERE path = '/api/auth/login'`).Scan(&count)
		return err == nil && count == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func (s *MultiTenantSuite) TestSingleSignOn() {
	server := httptest.NewServer(s.handler)
	defer server.Close()

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(server.URL + "/auth/oidc/login")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Require().Equal(http.StatusTemporaryRedirect, resp.StatusCode)
	location, err := url.Parse(resp.Header.Get("Location"))
	s.Require().NoError(err)
	state := location.Query().Get("state")
	s.Require().NotEmpty(state)

	resp, err = client.Get(server.URL + "/auth/oidc/callback?state=wrong&code=good-code")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, err = client.Get(server.URL + "/auth/oidc/callback?state=" + url.QueryEscape(state) + "&code=good-code")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result models.AuthResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&result))
	s.Equal("sso@example.com", result.User.Email)
	s.Equal("Sso User", result.User.Name)

	// the state is single use
	resp, err = client.Get(server.URL + "/auth/oidc/callback?state=" + url.QueryEscape(state) + "&code=good-code")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	rec := s.doJSON(http.MethodGet, "/api/auth/me", result.Token, "")
	s.Equal(http.StatusOK, rec.Code)
}

func TestSetupRouter_WithoutProvider(t *testing.T) {
	cfg := testConfig(config.AuthModeMulti)
	repos := repositories.NewRepositories(nil, nil)
	srvs := services.NewServices(repos, trellomocks.NewMockAPI(t), authenticator.NewTokenIssuer("s", time.Hour), services.Options{MultiTenant: true})
	router, err := setupRouter(cfg, controllers.NewControllers(srvs, nil, cfg.MaxUploadBytes), srvs, repos)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/oidc/login", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// without a store every delivery is still acknowledged
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhooks/trello", strings.NewReader(cardMovedOnB1)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenStore_SharesAuditDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boardhook.db")
	db, err := database.InitializeDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	store, err := openStore(context.Background(), config.Config{StoreURL: "sqlite://" + path, AuditDBPath: path}, db)
	require.NoError(t, err)
	_, shared := store.(*kvstore.SQLiteStore)
	require.True(t, shared)

	ctx := context.Background()
	events := repositories.NewEventLog(store)
	audit := repositories.NewAuditRepository(db)

	const deliveries = 100
	var wg sync.WaitGroup
	errs := make(chan error, 2*deliveries)
	for i := 0; i < deliveries; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			card := fmt.Sprintf("card-%d", i)
			errs <- events.Append(ctx, "ana@example.com", &models.Event{Type: "updateCard", Card: &card, Raw: json.RawMessage(`{}`)})
		}(i)
		go func() {
			defer wg.Done()
			errs <- audit.Create(ctx, &models.AuditLogEntry{Timestamp: time.Now().UTC(), UserEmail: "ana@example.com", Method: http.MethodPost, Path: "/api/webhooks/trello"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	page := events.ReadSince(ctx, "ana@example.com", 0)
	assert.Equal(t, int64(deliveries), page.Version)
	assert.Len(t, page.Events, models.MaxEvents)

	// closing the store leaves the audit handle open
	require.NoError(t, store.Close())
	assert.NoError(t, db.Ping())
}

func TestOpenStore_SeparateFiles(t *testing.T) {
	dir := t.TempDir()
	db, err := database.InitializeDatabase(filepath.Join(dir, "audit.db"))
	require.NoError(t, err)
	defer db.Close()

	store, err := openStore(context.Background(), config.Config{
		StoreURL:    "sqlite://" + filepath.Join(dir, "events.db"),
		AuditDBPath: filepath.Join(dir, "audit.db"),
	}, db)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.HSet(context.Background(), "h", "f", "v"))
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv_hashes`).Scan(&count))
	assert.Zero(t, count)

	none, err := openStore(context.Background(), config.Config{AuditDBPath: "audit.db"}, db)
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestSamePath(t *testing.T) {
	assert.True(t, samePath("boardhook.db", "./boardhook.db"))
	assert.False(t, samePath("a.db", "b.db"))
	assert.False(t, samePath("", ""))
}
