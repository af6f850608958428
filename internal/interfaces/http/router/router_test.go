package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	crmapp "github.com/erp/crm/internal/application/crm"
	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/erp/crm/internal/infrastructure/auth"
	"github.com/erp/crm/internal/infrastructure/config"
	"github.com/erp/crm/internal/interfaces/http/handler"
	"github.com/erp/crm/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))

	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetupAppliesMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api-Middleware", "applied")
		c.Next()
	})

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "applied", w.Header().Get("X-Api-Middleware"))

	w = serve(engine, http.MethodGet, "/outside")
	assert.Empty(t, w.Header().Get("X-Api-Middleware"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("crm", "/crm")
		assert.Equal(t, "crm", g.Name())
		assert.Equal(t, "/crm", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("/items", ok).
			POST("/items", ok).
			PUT("/items/:id", ok).
			PATCH("/items/:id", ok).
			DELETE("/items/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/test/items"},
			{http.MethodPost, "/api/v1/test/items"},
			{http.MethodPut, "/api/v1/test/items/1"},
			{http.MethodPatch, "/api/v1/test/items/1"},
			{http.MethodDelete, "/api/v1/test/items/1"},
		}
		for _, tt := range tests {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code, "Route %s %s should work", tt.method, tt.path)
		}
	})

	t.Run("subgroup middleware stays scoped", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
		guarded := g.Group("guarded", "/guarded")
		guarded.Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})
		guarded.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/test/open").Code)
		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/test/guarded").Code)
	})

	t.Run("lists routes with prefixes", func(t *testing.T) {
		g := NewDomainGroup("test", "/test")
		g.GET("/a", nil)
		g.Group("sub", "/sub").POST("/b", nil)
		g.Group("flat", "").DELETE("/c", nil)

		assert.Equal(t, []RouteInfo{
			{Method: http.MethodGet, Path: "/test/a"},
			{Method: http.MethodPost, Path: "/test/sub/b"},
			{Method: http.MethodDelete, Path: "/test/c"},
		}, g.Routes())
	})
}

// recordingEntityService answers every call with the operation name so
// tests can tell which route a request reached
type recordingEntityService struct {
	calls []string
}

func (s *recordingEntityService) Catalog() []crmapp.EntityDescriptor {
	s.calls = append(s.calls, "catalog")
	return []crmapp.EntityDescriptor{}
}

func (s *recordingEntityService) Describe(entity string) (crmapp.EntityDescriptor, error) {
	s.calls = append(s.calls, "describe:"+entity)
	return crmapp.EntityDescriptor{Table: entity}, nil
}

func (s *recordingEntityService) Create(_ context.Context, tenantID, _ uuid.UUID, entity string, _ json.RawMessage) (crm.Record, error) {
	s.calls = append(s.calls, "create:"+entity)
	return &crm.Agent{TenantEntity: shared.NewTenantEntity(tenantID)}, nil
}

func (s *recordingEntityService) Get(_ context.Context, tenantID uuid.UUID, entity string, _ uuid.UUID) (crm.Record, error) {
	s.calls = append(s.calls, "get:"+entity)
	return &crm.Agent{TenantEntity: shared.NewTenantEntity(tenantID)}, nil
}

func (s *recordingEntityService) List(_ context.Context, _ uuid.UUID, entity string, _ shared.Filter) (shared.Paginated[crm.Record], error) {
	s.calls = append(s.calls, "list:"+entity)
	return shared.Paginated[crm.Record]{Items: []crm.Record{}, Page: 1, PageSize: 20}, nil
}

func (s *recordingEntityService) Update(_ context.Context, tenantID, _ uuid.UUID, entity string, _ uuid.UUID, _ int, _ json.RawMessage) (crm.Record, error) {
	s.calls = append(s.calls, "update:"+entity)
	return &crm.Agent{TenantEntity: shared.NewTenantEntity(tenantID)}, nil
}

func (s *recordingEntityService) Delete(_ context.Context, _, _ uuid.UUID, entity string, _ uuid.UUID) error {
	s.calls = append(s.calls, "delete:"+entity)
	return nil
}

type recordingAttachmentService struct {
	calls []string
}

func (s *recordingAttachmentService) RequestUpload(_ context.Context, _, _, messageID uuid.UUID, _ crmapp.AttachmentUploadRequest) (*crmapp.AttachmentUploadResponse, error) {
	s.calls = append(s.calls, "upload")
	return &crmapp.AttachmentUploadResponse{MessageID: messageID}, nil
}

func (s *recordingAttachmentService) DownloadURL(_ context.Context, _, messageID uuid.UUID) (*crmapp.AttachmentDownloadResponse, error) {
	s.calls = append(s.calls, "download")
	return &crmapp.AttachmentDownloadResponse{MessageID: messageID}, nil
}

func setupCRMEngine(opts CRMRouteOptions, claims func(*gin.Context)) (*gin.Engine, *recordingEntityService, *recordingAttachmentService) {
	entities := &recordingEntityService{}
	attachments := &recordingAttachmentService{}

	engine := gin.New()
	r := NewRouter(engine)
	if claims != nil {
		r.Use(func(c *gin.Context) {
			claims(c)
			c.Next()
		})
	}
	r.Register(NewCRMGroup(CRMHandlers{
		Entities:    handler.NewEntityHandler(entities),
		Attachments: handler.NewAttachmentHandler(attachments),
	}, opts))
	r.Setup()
	return engine, entities, attachments
}

func serve(engine http.Handler, method, target string) *httptest.ResponseRecorder {
	return serveBody(engine, method, target, "")
}

func serveBody(engine http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.TenantIDHeader, uuid.NewString())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCRMGroupRouting(t *testing.T) {
	engine, entities, attachments := setupCRMEngine(CRMRouteOptions{}, nil)
	id := uuid.NewString()

	tests := []struct {
		method string
		path   string
		body   string
		status int
		call   string
	}{
		{http.MethodGet, "/api/v1/crm/entities", "", http.StatusOK, "catalog"},
		{http.MethodGet, "/api/v1/crm/entities/agents", "", http.StatusOK, "describe:agents"},
		{http.MethodGet, "/api/v1/crm/agents", "", http.StatusOK, "list:agents"},
		{http.MethodPost, "/api/v1/crm/agents", `{}`, http.StatusCreated, "create:agents"},
		{http.MethodGet, "/api/v1/crm/agents/" + id, "", http.StatusOK, "get:agents"},
		{http.MethodPut, "/api/v1/crm/agents/" + id + "?version=1", `{}`, http.StatusOK, "update:agents"},
		{http.MethodDelete, "/api/v1/crm/agents/" + id, "", http.StatusNoContent, "delete:agents"},
		{http.MethodGet, "/api/v1/crm/talk_messages", "", http.StatusOK, "list:talk_messages"},
		{http.MethodGet, "/api/v1/crm/talk_messages/" + id, "", http.StatusOK, "get:talk_messages"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			entities.calls = nil
			w := serveBody(engine, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)
			require.Len(t, entities.calls, 1)
			assert.Equal(t, tt.call, entities.calls[0])
		})
	}

	t.Run("attachment routes", func(t *testing.T) {
		target := "/api/v1/crm/talk_messages/" + id + "/attachment-url"
		w := serveBody(engine, http.MethodPost, target, `{"file_name":"a.pdf","content_type":"application/pdf","file_size":1}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w = serve(engine, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, []string{"upload", "download"}, attachments.calls)
	})
}

func TestCRMGroupPermissions(t *testing.T) {
	withPermissions := func(perms ...string) func(*gin.Context) {
		return func(c *gin.Context) {
			claims := &auth.Claims{TenantID: uuid.NewString(), UserID: uuid.NewString(), Permissions: perms}
			c.Set(middleware.JWTClaimsKey, claims)
			c.Set(middleware.JWTTenantIDKey, claims.TenantID)
			c.Set(middleware.JWTUserIDKey, claims.UserID)
		}
	}
	id := uuid.NewString()

	t.Run("entity permission granted", func(t *testing.T) {
		engine, entities, _ := setupCRMEngine(CRMRouteOptions{Enforce: true}, withPermissions("agents:read"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/crm/agents").Code)
		assert.Equal(t, []string{"list:agents"}, entities.calls)
	})

	t.Run("entity permission denied", func(t *testing.T) {
		engine, entities, _ := setupCRMEngine(CRMRouteOptions{Enforce: true}, withPermissions("agents:read"))

		w := serve(engine, http.MethodDelete, "/api/v1/crm/agents/"+id)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, entities.calls)
	})

	t.Run("catalog needs no entity permission", func(t *testing.T) {
		engine, _, _ := setupCRMEngine(CRMRouteOptions{Enforce: true}, withPermissions())

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/crm/entities").Code)
	})

	t.Run("attachment upload needs talk_messages update", func(t *testing.T) {
		engine, _, attachments := setupCRMEngine(CRMRouteOptions{Enforce: true}, withPermissions("talk_messages:read"))
		target := "/api/v1/crm/talk_messages/" + id + "/attachment-url"

		w := serveBody(engine, http.MethodPost, target, `{"file_name":"a.pdf","content_type":"application/pdf","file_size":1}`)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = serve(engine, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"download"}, attachments.calls)
	})

	t.Run("not enforced", func(t *testing.T) {
		engine, _, _ := setupCRMEngine(CRMRouteOptions{}, withPermissions())

		assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/v1/crm/agents/"+id).Code)
	})
}

func TestCRMGroupOptionalToken(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-at-least-32-chars",
		Issuer:                "crm-test",
		AccessTokenExpiration: time.Minute,
	})
	tokenTenant := uuid.New()
	token, _, err := jwtService.GenerateAccessToken(auth.TokenInput{TenantID: tokenTenant, UserID: uuid.New(), Username: "ada"})
	require.NoError(t, err)

	engine := gin.New()
	r := NewRouter(engine).Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	r.Register(NewCRMGroup(CRMHandlers{
		Entities:    handler.NewEntityHandler(&recordingEntityService{}),
		Attachments: handler.NewAttachmentHandler(&recordingAttachmentService{}),
	}, CRMRouteOptions{}))
	r.Setup()

	decodeTenant := func(w *httptest.ResponseRecorder) string {
		var body struct {
			Data struct {
				TenantID string `json:"tenant_id"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body.Data.TenantID
	}

	t.Run("token tenant wins over header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/crm/agents", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(handler.TenantIDHeader, uuid.NewString())
		req.Header.Set(middleware.AuthHeaderKey, "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, tokenTenant.String(), decodeTenant(w))
	})

	t.Run("invalid token falls back to header", func(t *testing.T) {
		headerTenant := uuid.NewString()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/crm/agents", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(handler.TenantIDHeader, headerTenant)
		req.Header.Set(middleware.AuthHeaderKey, "Bearer not-a-token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, headerTenant, decodeTenant(w))
	})
}
