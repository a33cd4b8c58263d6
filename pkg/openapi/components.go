package openapi

// Components holds reusable definitions.
type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	Responses       map[string]*Response       `json:"responses,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// NewComponents returns the schemas and responses shared by every handler:
// error bodies, the 422 validation body, and the bearer scheme.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
				Required: []string{"error"},
			},
			"ValidationError": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Example: "validation failed"},
					"errors": {
						Type:                 "object",
						AdditionalProperties: &Schema{Type: "array", Items: &Schema{Type: "string"}},
					},
				},
				Required: []string{"error", "errors"},
			},
			"Message": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string"},
				},
				Required: []string{"message"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      ResponseJSON("Malformed request body", "Error"),
			"Unauthorized":    ResponseJSON("Missing, unknown or revoked token", "Error"),
			"NotFound":        ResponseJSON("Resource not found", "Error"),
			"ValidationError": ResponseJSON("One or more fields are invalid", "ValidationError"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			BearerAuth: {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "opaque",
				Description:  "Token returned by POST /login.",
			},
		},
	}
}

// AddSchemas merges schemas, replacing entries with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}
