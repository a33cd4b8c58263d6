package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestNew_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.HandlerFunc(echoPath))
		})
	}
}

func TestModule_Serve(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))

	if m.Prefix() != "/api" {
		t.Fatalf("Prefix() = %q, want /api", m.Prefix())
	}

	tests := []struct {
		path string
		want string
	}{
		{"/api", "/"},
		{"/api/profiles", "/profiles"},
		{"/api/profiles/123", "/profiles/123"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			m.Serve(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := w.Body.String(); got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModule_MiddlewareOrder(t *testing.T) {
	var order []string
	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	for _, name := range []string{"first", "second"} {
		m.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	m.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRouter(t *testing.T) {
	r := module.NewRouter()
	r.HandleNative("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("healthy"))
	})
	r.Mount(module.New("/api", http.HandlerFunc(echoPath)))
	r.Mount(module.New("/storage", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("blob" + req.URL.Path))
	})))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"native", "/healthz", http.StatusOK, "healthy"},
		{"api module", "/api/profiles", http.StatusOK, "/profiles"},
		{"api root", "/api", http.StatusOK, "/"},
		{"trailing slash", "/api/admin/profiles/", http.StatusOK, "/admin/profiles"},
		{"module root with slash", "/api/", http.StatusOK, "/"},
		{"storage module", "/storage/profiles/a.png", http.StatusOK, "blob/profiles/a.png"},
		{"prefix lookalike", "/apix", http.StatusNotFound, ""},
		{"unknown", "/unknown", http.StatusNotFound, ""},
		{"root", "/", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", string(body), tt.wantBody)
				}
			}
		})
	}
}
