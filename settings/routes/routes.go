package routes

import (
	"github.com/gin-gonic/gin"

	c "github.com/hfletcher/jobsite/settings/controllers"
)

func RegisterSettingsRoutes(r *gin.Engine) {
	// Profile
	r.GET("/profile", c.GetProfile)
	r.PUT("/profile", c.UpdateProfile)

	// Account
	r.GET("/account/settings", c.GetAccountSettings)
	r.PUT("/account/settings", c.UpdateAccountSettings)
	r.POST("/account/password", c.ChangePassword)

	// Notifications
	r.GET("/notifications/settings", c.GetNotificationSettings)
	r.PUT("/notifications/settings", c.UpdateNotificationSettings)

	// Branding
	r.GET("/branding", c.GetBranding)
	r.PUT("/branding", c.UpdateBranding)
	r.POST("/branding/logo", c.UploadLogo)

	// Client portal
	r.GET("/portal/settings", c.GetPortalSettings)
	r.PUT("/portal/settings", c.UpdatePortalSettings)
}
