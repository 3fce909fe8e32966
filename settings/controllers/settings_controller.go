package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	m "github.com/hfletcher/jobsite/settings/models"
	u "github.com/hfletcher/jobsite/settings/utils"
)

// Profile
func GetProfile(c *gin.Context) {
	profile := m.Profile{ID: 1, Email: "demo@example.com", CompanyName: "Demo Builders"}
	u.JSON(c, http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	var req m.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "updated"})
}

// Account
func GetAccountSettings(c *gin.Context) {
	u.JSON(c, http.StatusOK, m.AccountSettings{Language: "en", Timezone: "UTC", Currency: "USD"})
}

func UpdateAccountSettings(c *gin.Context) {
	var req m.UpdateAccountSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "updated"})
}

func ChangePassword(c *gin.Context) {
	var req m.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewPassword == "" {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "changed"})
}

// Notifications
func GetNotificationSettings(c *gin.Context) {
	u.JSON(c, http.StatusOK, m.NotificationSettings{
		EmailOnUpdateRequest: true,
		EmailOnPortalLogin:   false,
		WeeklyDigest:         true,
		TrialReminders:       true,
	})
}

func UpdateNotificationSettings(c *gin.Context) {
	var req m.UpdateNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "updated"})
}

// Branding
func GetBranding(c *gin.Context) {
	u.JSON(c, http.StatusOK, m.BrandingSettings{BrandColor: "#1e3a5f"})
}

func UpdateBranding(c *gin.Context) {
	var req m.UpdateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "updated"})
}

func UploadLogo(c *gin.Context) {
	u.JSON(c, http.StatusCreated, m.UploadLogoResponse{URL: "https://example.com/logo.png"})
}

// Portal
func GetPortalSettings(c *gin.Context) {
	u.JSON(c, http.StatusOK, m.PortalSettings{
		Enabled:        true,
		ShowBudget:     false,
		AllowPhotoZoom: true,
	})
}

func UpdatePortalSettings(c *gin.Context) {
	var req m.UpdatePortalSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "updated"})
}
