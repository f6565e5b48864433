package httpx

import (
	"log/slog"

	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/handlers"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

// RouterDeps carries everything BuildRouter wires
type RouterDeps struct {
	Auth          *handlers.AuthHandlers
	Landlord      *handlers.LandlordHandlers
	Verification  *handlers.VerificationHandlers
	Users         *handlers.UserHandlers
	Notifications *handlers.NotificationHandlers
	Policies      *handlers.PolicyHandlers
	JWT           *middleware.AuthMW
	Casbin        *middleware.CasbinMW
	Logger        *slog.Logger
}

func BuildRouter(d RouterDeps) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"data": gin.H{"ok": true}}) })
	r.GET("/stations", d.Landlord.Stations)

	landlord := r.Group("/landlord")
	landlord.POST("/register", d.Landlord.Register)
	landlord.PATCH("/:id/complete", d.Landlord.Complete)
	landlord.POST("/verify-otp", d.Landlord.VerifyOTP)
	landlord.POST("/resend-otp", d.Landlord.ResendOTP)

	auth := r.Group("/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/register", d.JWT.OptionalJWT(), d.Auth.Register)

	v := r.Group("/").Use(d.JWT.WithJWT(), d.Casbin.Enforce())
	v.GET("/landlord/image/:id/:type/:index", d.Landlord.Image)

	v.GET("/auth/me", d.Auth.Me)
	v.POST("/auth/logout", d.Auth.Logout)
	v.POST("/auth/change-password", d.Auth.ChangePassword)
	v.POST("/auth/admin/change-password", d.Auth.AdminChangePassword)

	v.GET("/verification", d.Verification.List)
	v.GET("/verification/stats", d.Verification.Stats)
	v.GET("/verification/logs", d.Verification.Logs)
	v.GET("/verification/:id", d.Verification.Get)
	v.POST("/verification/:id/delegate", d.Verification.Delegate)
	v.POST("/verification/:id/verify", d.Verification.Verify)

	v.GET("/users", d.Users.List)
	v.POST("/users", d.Users.Create)
	v.PUT("/users/:id", d.Users.Update)
	v.DELETE("/users/:id", d.Users.Delete)

	v.GET("/notifications", d.Notifications.List)
	v.POST("/notifications", d.Notifications.MarkAllRead)
	v.POST("/notifications/:id/read", d.Notifications.MarkRead)

	adm := r.Group("/admin").Use(d.JWT.WithJWT(), d.Casbin.Enforce())
	adm.GET("/policies", d.Policies.List)
	adm.POST("/policies", d.Policies.Add)
	adm.DELETE("/policies", d.Policies.Remove)

	return r
}
