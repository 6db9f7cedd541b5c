package models

// RegisterRequest is the POST /api/auth/register payload.
type RegisterRequest struct {
	AppID string `json:"app_id"`
}

// RegisterResponse carries the issued API key. The key is returned exactly
// once; retrieve it later via GET /api/auth/api-key.
type RegisterResponse struct {
	AppID  string `json:"app_id"`
	APIKey string `json:"api_key"`
}

// RevokeRequest is the POST /api/auth/revoke payload.
type RevokeRequest struct {
	AppID string `json:"app_id"`
}
