package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/routes"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func deny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func profileGroup() routes.Group {
	return routes.Group{
		Tags: []string{"Profiles"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/profiles", Handler: write("public"), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "PUT", Pattern: "/profiles/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("update " + r.PathValue("id")))
			}, Middleware: []func(http.Handler) http.Handler{deny}, OpenAPI: &openapi.Operation{Summary: "Update", Tags: []string{"Admin"}}},
			{Method: "GET", Pattern: "/hidden", Handler: write("hidden")},
		},
		Children: []routes.Group{
			{
				Prefix: "/admin",
				Tags:   []string{"Admin"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/profiles", Handler: write("admin"), Middleware: []func(http.Handler) http.Handler{deny}, OpenAPI: &openapi.Operation{Summary: "Admin list"}},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"Profile": {Type: "object"},
		},
	}
}

func TestRegister_Dispatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("t", "1"), profileGroup())

	tests := []struct {
		name       string
		method     string
		path       string
		auth       bool
		wantStatus int
		wantBody   string
	}{
		{"public", "GET", "/profiles", false, http.StatusOK, "public"},
		{"undocumented route still served", "GET", "/hidden", false, http.StatusOK, "hidden"},
		{"route middleware rejects", "PUT", "/profiles/42", false, http.StatusUnauthorized, ""},
		{"route middleware passes", "PUT", "/profiles/42", true, http.StatusOK, "update 42"},
		{"child prefix", "GET", "/admin/profiles", true, http.StatusOK, "admin"},
		{"child middleware", "GET", "/admin/profiles", false, http.StatusUnauthorized, ""},
		{"method mismatch", "DELETE", "/profiles", false, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth {
				req.Header.Set("Authorization", "Bearer x")
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRegister_Spec(t *testing.T) {
	spec := openapi.NewSpec("t", "1")
	routes.Register(http.NewServeMux(), "/api", spec, profileGroup())

	require.NotNil(t, spec.Paths["/api/profiles"])
	assert.Equal(t, []string{"Profiles"}, spec.Paths["/api/profiles"].Get.Tags)
	assert.Equal(t, []string{"Admin"}, spec.Paths["/api/profiles/{id}"].Put.Tags)
	assert.Equal(t, "Admin list", spec.Paths["/api/admin/profiles"].Get.Summary)
	assert.Nil(t, spec.Paths["/api/hidden"])
	assert.Contains(t, spec.Components.Schemas, "Profile")
}

func TestAddToSpec_DoesNotMutateRoute(t *testing.T) {
	op := &openapi.Operation{Summary: "List"}
	g := routes.Group{
		Tags:   []string{"Profiles"},
		Routes: []routes.Route{{Method: "GET", Pattern: "/profiles", Handler: write(""), OpenAPI: op}},
	}

	g.AddToSpec("", openapi.NewSpec("t", "1"))

	assert.Empty(t, op.Tags)
}
