package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	stock := NewDomainGroup("stock", "/stock").
		GET("", reply("list")).
		POST("/:id/adjust", reply("adjust")).
		PUT("/:id", reply("set")).
		DELETE("/:id", reply("delete"))
	n := NewRouter(engine, WithAPIVersion("v2")).Register(stock).Setup()

	assert.Equal(t, 4, n)
	assert.Equal(t, "list", serve(engine, http.MethodGet, "/api/v2/stock").Body.String())
	assert.Equal(t, "adjust", serve(engine, http.MethodPost, "/api/v2/stock/1/adjust").Body.String())
	assert.Equal(t, "set", serve(engine, http.MethodPut, "/api/v2/stock/1").Body.String())
	assert.Equal(t, "delete", serve(engine, http.MethodDelete, "/api/v2/stock/1").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/stock").Code)
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	var seen []string
	tag := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { seen = append(seen, name); c.Next() }
	}

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", reply("login"))
	auth.Group("session", "").Use(tag("jwt")).POST("/logout", reply("logout"))
	// added after the routes, still applies to them
	auth.Use(tag("ratelimit"))

	n := NewRouter(engine).Register(auth).Setup()
	assert.Equal(t, 2, n)

	serve(engine, http.MethodPost, "/api/v1/auth/login")
	assert.Equal(t, []string{"ratelimit"}, seen)

	seen = nil
	serve(engine, http.MethodPost, "/api/v1/auth/logout")
	assert.Equal(t, []string{"ratelimit", "jwt"}, seen)
}

func TestDomainGroup_RouteMiddlewareRunsLast(t *testing.T) {
	engine := gin.New()
	var seen []string
	g := NewDomainGroup("users", "/users").Use(func(c *gin.Context) { seen = append(seen, "group"); c.Next() })
	g.DELETE("/:id/hard", func(c *gin.Context) { seen = append(seen, "admin"); c.Next() }, reply("gone"))
	NewRouter(engine).Register(g).Setup()

	w := serve(engine, http.MethodDelete, "/api/v1/users/7/hard")
	assert.Equal(t, "gone", w.Body.String())
	assert.Equal(t, []string{"group", "admin"}, seen)
}
