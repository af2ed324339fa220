package response

import "prizedraw-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
	Admin bool        `json:"isAdmin"`
}

type RegisterResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// SessionResponse is the payload of the session probe. AdminStatus keeps
// the optimistic hint and the confirmed answer separate so the client can
// render immediately and correct itself when the check lands.
type SessionResponse struct {
	User  domain.User        `json:"user"`
	Admin domain.AdminStatus `json:"admin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
