package dto

// ProviderLoginRequest payload.
type ProviderLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ReissueRequest carries the refresh token presented for access-token rotation.
type ReissueRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenResponse returns the credential pair at login.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ReissueResponse returns the rotated access token.
type ReissueResponse struct {
	AccessToken string `json:"accessToken"`
}

// LoginResponse bundles tokens with enrollment state so clients know whether
// to route into onboarding.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	HasFamily    bool   `json:"hasFamily"`
	Joined       bool   `json:"joined"`
}
