package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Profiles", "1.2.0")
	spec.SetDescription("desc")
	spec.AddServer("https://api.hellocse.test/")
	spec.AddServer("")

	assert.Equal(t, openapi.Version, spec.OpenAPI)
	assert.Equal(t, "Profiles", spec.Info.Title)
	assert.Equal(t, "1.2.0", spec.Info.Version)
	assert.Equal(t, "desc", spec.Info.Description)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "https://api.hellocse.test", spec.Servers[0].URL)

	for _, name := range []string{"Error", "ValidationError", "Message"} {
		assert.Contains(t, spec.Components.Schemas, name)
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "NotFound", "ValidationError"} {
		assert.Contains(t, spec.Components.Responses, name)
	}
	assert.Equal(t, "bearer", spec.Components.SecuritySchemes[openapi.BearerAuth].Scheme)
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec("Profiles", "1.0.0")

	spec.AddOperation("/api/profiles", "get", &openapi.Operation{Summary: "list"})
	spec.AddOperation("/api/profiles", "POST", &openapi.Operation{Summary: "create"})
	spec.AddOperation("/api/profiles/{id}", "PUT", &openapi.Operation{Summary: "update"})
	spec.AddOperation("/api/profiles/{id}", "DELETE", &openapi.Operation{Summary: "delete"})
	spec.AddOperation("/api/profiles/{id}", "PATCH", &openapi.Operation{Summary: "ignored"})

	assert.Equal(t, "list", spec.Paths["/api/profiles"].Get.Summary)
	assert.Equal(t, "create", spec.Paths["/api/profiles"].Post.Summary)
	assert.Equal(t, "update", spec.Paths["/api/profiles/{id}"].Put.Summary)
	assert.Equal(t, "delete", spec.Paths["/api/profiles/{id}"].Delete.Summary)
	assert.Nil(t, spec.Paths["/api/profiles/{id}"].Get)
}

func TestComponents_AddSchemas(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Profile": {Type: "object"},
	})
	c.AddResponses(map[string]*openapi.Response{
		"Forbidden": {Description: "no"},
	})

	assert.Contains(t, c.Schemas, "Profile")
	assert.Contains(t, c.Schemas, "Error")
	assert.Contains(t, c.Responses, "Forbidden")
	assert.Contains(t, c.Responses, "NotFound")
}

func TestMarshalJSON_Secured(t *testing.T) {
	spec := openapi.NewSpec("Profiles", "1.0.0")
	spec.AddOperation("/api/user", "GET", &openapi.Operation{
		Security: openapi.Secured(),
		Responses: map[int]*openapi.Response{
			200: {Description: "ok"},
			401: openapi.ResponseRef("Unauthorized"),
		},
	})

	data, err := openapi.MarshalJSON(spec)
	require.NoError(t, err)

	var doc struct {
		Paths map[string]struct {
			Get struct {
				Security  []map[string][]string     `json:"security"`
				Responses map[string]map[string]any `json:"responses"`
			} `json:"get"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	get := doc.Paths["/api/user"].Get
	require.Len(t, get.Security, 1)
	assert.Contains(t, get.Security[0], openapi.BearerAuth)
	assert.Equal(t, "#/components/responses/Unauthorized", get.Responses["401"]["$ref"])
}

func TestNullable(t *testing.T) {
	data, err := json.Marshal(openapi.Nullable("string", "uri"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":["string","null"],"format":"uri"}`, string(data))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.json")
	require.NoError(t, openapi.WriteJSON(openapi.NewSpec("Profiles", "1.0.0"), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"openapi": "3.1.0"`)

	assert.Error(t, openapi.WriteJSON(openapi.NewSpec("x", "1"), "/nonexistent/dir/openapi.json"))
}

func TestServeSpec(t *testing.T) {
	w := httptest.NewRecorder()
	openapi.ServeSpec([]byte(`{"openapi":"3.1.0"}`))(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"openapi":"3.1.0"}`, w.Body.String())
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Custom")

	cfg := &openapi.Config{}
	require.NoError(t, cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}))

	assert.Equal(t, "Custom", cfg.Title)
	assert.NotEmpty(t, cfg.Description)

	cfg.Merge(&openapi.Config{Description: "over"})
	assert.Equal(t, "over", cfg.Description)
	assert.Equal(t, "Custom", cfg.Title)
}
