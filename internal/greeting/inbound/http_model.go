package inbound

type HelloResponse struct {
	Name string `json:"name,omitempty" example:"Admin"`
	Role string `json:"role,omitempty" example:"admin"`
}

func (HelloResponse) Message() string {
	return "Hello world"
}
