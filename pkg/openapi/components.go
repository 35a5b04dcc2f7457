package openapi

import "maps"

// errorResponses are the shared error bodies every API can reference by name.
var errorResponses = []struct {
	name, description string
}{
	{"BadRequest", "Invalid request"},
	{"Unauthorized", "Missing or invalid identity"},
	{"Forbidden", "Role lacks the required permission"},
	{"NotFound", "Resource not found"},
	{"Conflict", "Resource conflict"},
	{"TooLarge", "Request body exceeds the configured limit"},
	{"BadGateway", "Upstream provider failed"},
	{"Unavailable", "Upstream provider is not configured"},
}

// NewComponents creates Components with the shared page request schema and
// the JSON error responses produced by handlers.RespondError.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: ad_name,-created_at"},
				},
			},
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses:       make(map[string]*Response, len(errorResponses)),
		SecuritySchemes: make(map[string]*SecurityScheme),
	}

	for _, e := range errorResponses {
		c.Responses[e.name] = ResponseJSON(e.description, "Error")
	}

	return c
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
