package auth

import "github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"

type spec struct {
	Login  *openapi.Operation
	Logout *openapi.Operation
	User   *openapi.Operation
}

var Spec = spec{
	Login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Check administrator credentials and issue a bearer token. Earlier tokens stay valid.",
		RequestBody: openapi.RequestBodyJSON("LoginRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Token issued", "LoginResponse"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("ValidationError"),
		},
	},
	Logout: &openapi.Operation{
		Summary:     "Log out",
		Description: "Revoke the token presented with this request only.",
		Security:    openapi.Secured(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Token revoked", "Message"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	User: &openapi.Operation{
		Summary:  "Current user",
		Security: openapi.Secured(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Authenticated administrator", "User"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"name":       {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "name", "email", "created_at", "updated_at"},
		},
		"LoginRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email", Example: "admin@hellocse.fr"},
				"password": {Type: "string", Format: "password"},
			},
			Required: []string{"email", "password"},
		},
		"LoginResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string", Example: MsgLoggedIn},
				"token":   {Type: "string"},
				"user":    openapi.SchemaRef("User"),
			},
			Required: []string{"message", "token", "user"},
		},
	}
}
