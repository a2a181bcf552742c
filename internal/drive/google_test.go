package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// fakeDrive is an in-memory Drive v3 folder/file store behind httptest.
type fakeDrive struct {
	folders map[string]struct{ name, parent string } // id -> meta
	files   map[string][]byte                        // id -> content
	nextID  int
	fail5xx int // serve this many 500s before succeeding
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		folders: make(map[string]struct{ name, parent string }),
		files:   make(map[string][]byte),
	}
}

func (f *fakeDrive) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
		if f.fail5xx > 0 {
			f.fail5xx--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		q := r.URL.Query().Get("q")
		type entry struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		var out struct {
			Files []entry `json:"files"`
		}
		for id, meta := range f.folders {
			if strings.Contains(q, "name = '"+meta.name+"'") && strings.Contains(q, "'"+meta.parent+"' in parents") {
				out.Files = append(out.Files, entry{ID: id, Name: meta.name})
			}
		}
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		var meta struct {
			Name    string   `json:"name"`
			Parents []string `json:"parents"`
		}
		json.NewDecoder(r.Body).Decode(&meta)
		f.nextID++
		id := fmt.Sprintf("folder-%d", f.nextID)
		parent := "root"
		if len(meta.Parents) > 0 {
			parent = meta.Parents[0]
		}
		f.folders[id] = struct{ name, parent string }{meta.Name, parent}
		json.NewEncoder(w).Encode(map[string]string{"id": id})
	})

	mux.HandleFunc("POST /upload/files", func(w http.ResponseWriter, r *http.Request) {
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])

		metaPart, err := mr.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var meta struct {
			Name    string   `json:"name"`
			Parents []string `json:"parents"`
		}
		json.NewDecoder(metaPart).Decode(&meta)

		mediaPart, err := mr.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(mediaPart)

		f.nextID++
		id := fmt.Sprintf("file-%d", f.nextID)
		f.files[id] = content
		json.NewEncoder(w).Encode(map[string]string{"id": id})
	})

	return mux
}

func testClient(t *testing.T, srv *httptest.Server) *Google {
	t.Helper()
	g := NewGoogle("client-id", "client-secret", "refresh-token", 5*time.Second)
	g.baseURL = srv.URL
	g.uploadURL = srv.URL + "/upload"
	g.revokeURL = srv.URL + "/revoke"
	g.ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	return g
}

func TestEnsureFolderCreatesNestedPath(t *testing.T) {
	fake := newFakeDrive()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	g := testClient(t, srv)
	ctx := context.Background()

	id, err := g.EnsureFolder(ctx, "ClassDesk/山田太郎")
	if err != nil {
		t.Fatal(err)
	}
	if id == "" || id == "root" {
		t.Fatalf("EnsureFolder id = %q", id)
	}
	if len(fake.folders) != 2 {
		t.Errorf("created %d folders, want 2", len(fake.folders))
	}

	// Second call must reuse, not duplicate.
	again, err := g.EnsureFolder(ctx, "ClassDesk/山田太郎")
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("second EnsureFolder = %q, want %q", again, id)
	}
	if len(fake.folders) != 2 {
		t.Errorf("second call created folders: %d total, want 2", len(fake.folders))
	}
}

func TestUpload(t *testing.T) {
	fake := newFakeDrive()
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	g := testClient(t, srv)

	payload := []byte("png-bytes")
	id, err := g.Upload(context.Background(), payload, "evaluation_山田太郎_20240510.png", "folder-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(fake.files[id]) != string(payload) {
		t.Errorf("stored content = %q, want %q", fake.files[id], payload)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	fake := newFakeDrive()
	fake.fail5xx = 2
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	g := testClient(t, srv)

	if _, err := g.EnsureFolder(context.Background(), "ClassDesk"); err != nil {
		t.Fatalf("EnsureFolder after transient 500s: %v", err)
	}
}

func TestGivesUpAfterRetryBudget(t *testing.T) {
	fake := newFakeDrive()
	fake.fail5xx = 10
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	g := testClient(t, srv)

	if _, err := g.EnsureFolder(context.Background(), "ClassDesk"); err == nil {
		t.Fatal("EnsureFolder succeeded despite persistent 500s")
	}
}

func TestUnauthenticatedOperationsFail(t *testing.T) {
	g := NewGoogle("id", "secret", "", 5*time.Second)
	ctx := context.Background()

	if err := g.Authenticate(ctx); err != ErrNotAuthenticated {
		t.Errorf("Authenticate without refresh token = %v, want ErrNotAuthenticated", err)
	}
	if g.IsAuthenticated() {
		t.Error("IsAuthenticated = true")
	}
	if _, err := g.EnsureFolder(ctx, "x"); err != ErrNotAuthenticated {
		t.Errorf("EnsureFolder = %v, want ErrNotAuthenticated", err)
	}
	if _, err := g.Upload(ctx, nil, "f.png", "root"); err != ErrNotAuthenticated {
		t.Errorf("Upload = %v, want ErrNotAuthenticated", err)
	}
	if err := g.SignOut(ctx); err != ErrNotAuthenticated {
		t.Errorf("SignOut = %v, want ErrNotAuthenticated", err)
	}
}
