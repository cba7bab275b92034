package models

type TokenObtainRequest struct {
	Username *string `json:"username" validate:"required,notblank"`
	Password *string `json:"password" validate:"required,notblank"`
}

func (r *TokenObtainRequest) Normalize() {
	trim(r.Username)
}

type TokenRefreshRequest struct {
	Refresh *string `json:"refresh" validate:"required,notblank"`
}

func (r *TokenRefreshRequest) Normalize() {
	trim(r.Refresh)
}

type TokenVerifyRequest struct {
	Token *string `json:"token" validate:"required,notblank"`
}

func (r *TokenVerifyRequest) Normalize() {
	trim(r.Token)
}

type TokenRefreshResponse struct {
	Access string `json:"access"`
}
