package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/inamhi-tic/helpdesk-service/api"
	"github.com/inamhi-tic/helpdesk-service/internal/auth"
	"github.com/inamhi-tic/helpdesk-service/internal/handler"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
)

const pathSwagger = "/swagger"

// New builds the HTTP surface. The public form and the tracking lookup need
// no token; dashboard reads need a session; mutations on users and ticket
// deletion are admin-only.
func New(tickets *handler.TicketHandler, users *handler.UserHandler, tokens *auth.TokenIssuer) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)

	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/tickets", tickets.Create)
		v1.GET("/tickets/search", tickets.Search)
		v1.POST("/login", users.Login)

		authed := v1.Group("", auth.RequireAuth(tokens))
		{
			authed.GET("/tickets", tickets.List)
			authed.PUT("/tickets/:code", tickets.Update)
			authed.GET("/technicians", users.Technicians)

			admin := authed.Group("", auth.RequireRole(model.RoleAdmin))
			{
				admin.DELETE("/tickets/:code", tickets.Delete)
				admin.POST("/users", users.Register)
				admin.GET("/users", users.List)
				admin.PUT("/users/:id", users.Update)
				admin.DELETE("/users/:id", users.Delete)
			}
		}
	}

	return r
}
