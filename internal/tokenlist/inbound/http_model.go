package inbound

import "github.com/MichValwin/JWT-listing/internal/tokenlist/entity"

type TokenItem struct {
	Name  string `json:"name" example:"Admin"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.e30.c2ln"`
}

type ListTokensResponse []TokenItem

func (ListTokensResponse) Message() string {
	return "demo tokens"
}

type InspectRequest struct {
	Token string `json:"token"`
}

type InspectResponse struct {
	entity.Panel
}

func (InspectResponse) Message() string {
	return "token decoded, signature not checked"
}
