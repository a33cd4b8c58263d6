package openapi

import (
	"net/http"
	"strings"
)

const Version = "3.1.0"

// BearerAuth is the security scheme name registered by NewSpec.
const BearerAuth = "bearerAuth"

// NewSpec creates an empty document with the shared components registered.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: Version,
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer registers url as a server. Empty values are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: strings.TrimRight(url, "/")})
}

// AddOperation sets op on path for method. Unsupported methods are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// Secured returns the requirement list for bearer-authenticated operations.
func Secured() []SecurityRequirement {
	return []SecurityRequirement{{BearerAuth: {}}}
}
