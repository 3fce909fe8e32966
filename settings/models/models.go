package models

// ---- Profile ----

type Profile struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"fullName,omitempty"`
	CompanyName string  `json:"companyName"`
	Phone       string  `json:"phone,omitempty"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"fullName"`
	CompanyName *string `json:"companyName"`
	Phone       *string `json:"phone"`
}

// ---- Account ----

type AccountSettings struct {
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

type UpdateAccountSettingsRequest struct {
	Language *string `json:"language"`
	Timezone *string `json:"timezone"`
	Currency *string `json:"currency"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ---- Notifications ----

type NotificationSettings struct {
	EmailOnUpdateRequest bool `json:"emailOnUpdateRequest"`
	EmailOnPortalLogin   bool `json:"emailOnPortalLogin"`
	WeeklyDigest         bool `json:"weeklyDigest"`
	TrialReminders       bool `json:"trialReminders"`
}

type UpdateNotificationSettingsRequest struct {
	EmailOnUpdateRequest *bool `json:"emailOnUpdateRequest"`
	EmailOnPortalLogin   *bool `json:"emailOnPortalLogin"`
	WeeklyDigest         *bool `json:"weeklyDigest"`
	TrialReminders       *bool `json:"trialReminders"`
}

// ---- Branding ----
// Shown on the client portal and in PDF progress reports.

type BrandingSettings struct {
	LogoURL      *string `json:"logoUrl,omitempty"`
	BrandColor   string  `json:"brandColor"`
	ReportFooter string  `json:"reportFooter,omitempty"`
}

type UpdateBrandingRequest struct {
	LogoURL      *string `json:"logoUrl"`
	BrandColor   *string `json:"brandColor"`
	ReportFooter *string `json:"reportFooter"`
}

type UploadLogoResponse struct {
	URL string `json:"url"`
}

// ---- Portal ----

type PortalSettings struct {
	Enabled        bool   `json:"enabled"`
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
	ShowBudget     bool   `json:"showBudget"`
	AllowPhotoZoom bool   `json:"allowPhotoZoom"`
}

type UpdatePortalSettingsRequest struct {
	Enabled        *bool   `json:"enabled"`
	WelcomeMessage *string `json:"welcomeMessage"`
	ShowBudget     *bool   `json:"showBudget"`
	AllowPhotoZoom *bool   `json:"allowPhotoZoom"`
}
