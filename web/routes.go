package web

import (
	"github.com/campuswell/pulse/auth"
	"github.com/campuswell/pulse/httpx"
	"github.com/campuswell/pulse/moods"
)

// Register mounts the full HTTP surface: the public auth routes, the
// protected identity endpoint, and the mood collaborator behind the gate.
func Register(e *httpx.Echo, h *Handlers, mh *moods.Handlers, gate *Gate) {
	e.GET("/healthz", func(c httpx.Context) error {
		return c.JSON(httpx.StatusOK, map[string]string{"status": "ok"})
	})

	authGroup := e.Group("/auth")
	authGroup.GET("/login", h.LoginPage)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/register", h.Register)
	authGroup.POST("/logout", h.Logout)

	e.GET("/me", h.Me, gate.RequireAuth())

	if mh != nil {
		moodGroup := e.Group("/moods", gate.RequireAuth())
		moodGroup.GET("", mh.List)
		moodGroup.POST("", mh.Create)
		moodGroup.POST("/help", mh.Help)
		moodGroup.GET("/help", mh.HelpQueue, gate.RequireRole(auth.RoleStaff, auth.RoleAdmin))
	}
}
