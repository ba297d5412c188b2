package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-social-api/internal/container"
	handlers "github.com/oksasatya/go-social-api/internal/interface/http"
	"github.com/oksasatya/go-social-api/internal/interface/middleware"
	"github.com/oksasatya/go-social-api/pkg/helpers"
)

// UserModule wires the profile and follow-graph endpoints.
// Protected: GET/PUT /api/profile, POST /api/profile/avatar,
// GET /api/users, GET /api/users/suggestions, GET /api/users/search,
// GET /api/users/:id, POST /api/users/:id/follow
type UserModule struct {
	Profiles *handlers.ProfileHandler
	Follows  *handlers.FollowHandler
	JWT      *helpers.JWTManager
}

func NewUserModule(p *handlers.ProfileHandler, f *handlers.FollowHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Profiles: p, Follows: f, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Profiles.GetProfile)
		auth.PUT("/profile", m.Profiles.UpdateProfile)
		auth.POST("/profile/avatar", m.Profiles.UploadAvatar)

		auth.GET("/users", m.Profiles.ListProfiles)
		auth.GET("/users/suggestions", m.Profiles.ListSuggestions)
		auth.GET("/users/search", m.Profiles.Search)
		auth.GET("/users/:id", m.Profiles.GetProfileByID)
		auth.POST("/users/:id/follow", m.Follows.ToggleFollow)
	}
}
