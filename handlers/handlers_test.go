package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/store/memstore"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type rendered struct {
	status int
	name   string
	data   any
}

// recordingRenderer keeps what each request asked to render.
type recordingRenderer struct {
	mu    sync.Mutex
	calls []rendered
}

func (r *recordingRenderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	r.mu.Lock()
	r.calls = append(r.calls, rendered{status: status, name: name, data: data})
	r.mu.Unlock()
	w.WriteHeader(status)
	_, err := io.WriteString(w, name)
	return err
}

func (r *recordingRenderer) last(t *testing.T) rendered {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls, "nothing was rendered")
	return r.calls[len(r.calls)-1]
}

type fakeCovers struct {
	mu      sync.Mutex
	n       int
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newFakeCovers() *fakeCovers {
	return &fakeCovers{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeCovers) Upload(_ context.Context, name string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	key := fmt.Sprintf("covers/%d%s", f.n, filepath.Ext(name))
	f.objects[key] = data
	f.types[key] = contentType
	return key, nil
}

func (f *fakeCovers) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeCovers) GetObject(_ context.Context, key string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("no such key %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), f.types[key], nil
}

type testEnv struct {
	db     *memstore.Store
	views  *recordingRenderer
	covers *fakeCovers
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, memstore.New(), false)
}

// newTestEnvWith builds the real router over db. Covers are only wired when
// withCovers is set.
func newTestEnvWith(t *testing.T, db Catalog, withCovers bool) *testEnv {
	t.Helper()
	env := &testEnv{views: &recordingRenderer{}}
	switch db := db.(type) {
	case *memstore.Store:
		env.db = db
	case *failingCatalog:
		env.db = db.Store
	}
	cfg := RouterConfig{DB: db, Views: env.views, MaxUploadBytes: 1 << 20, Log: zap.NewNop()}
	if withCovers {
		env.covers = newFakeCovers()
		cfg.Covers = env.covers
	}
	env.router = NewRouter(cfg)
	return env
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type upload struct {
	filename    string
	contentType string
	content     []byte
}

func (e *testEnv) postMultipart(t *testing.T, path string, form url.Values, file *upload) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range form {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="cover"; filename="%s"`, file.filename))
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedAuthor(t *testing.T, first, family string) models.Author {
	t.Helper()
	a := models.Author{FirstName: first, FamilyName: family}
	id, err := e.db.InsertAuthor(context.Background(), &a)
	require.NoError(t, err)
	a.ID = id
	return a
}

func (e *testEnv) seedGenre(t *testing.T, name string) models.Genre {
	t.Helper()
	g := models.Genre{Name: name}
	id, err := e.db.InsertGenre(context.Background(), &g)
	require.NoError(t, err)
	g.ID = id
	return g
}

func (e *testEnv) seedBook(t *testing.T, title string, author primitive.ObjectID, genres ...primitive.ObjectID) models.Book {
	t.Helper()
	b := models.Book{Title: title, Summary: "Summary of " + title, ISBN: "isbn-" + title, AuthorID: author, GenreIDs: genres}
	id, err := e.db.InsertBook(context.Background(), &b)
	require.NoError(t, err)
	b.ID = id
	return b
}

func (e *testEnv) seedInstance(t *testing.T, book primitive.ObjectID, status string) models.BookInstance {
	t.Helper()
	bi := models.BookInstance{BookID: book, Imprint: "First edition", Status: status}
	id, err := e.db.InsertBookInstance(context.Background(), &bi)
	require.NoError(t, err)
	bi.ID = id
	return bi
}

// failingCatalog fails the lookups named in fail and delegates the rest.
type failingCatalog struct {
	*memstore.Store
	fail map[string]bool
}

var errStorage = errors.New("storage unavailable")

func (f *failingCatalog) CountBooks(ctx context.Context) (int64, error) {
	if f.fail["CountBooks"] {
		return 0, errStorage
	}
	return f.Store.CountBooks(ctx)
}

func (f *failingCatalog) AllAuthors(ctx context.Context) ([]models.Author, error) {
	if f.fail["AllAuthors"] {
		return nil, errStorage
	}
	return f.Store.AllAuthors(ctx)
}

func (f *failingCatalog) BooksByAuthor(ctx context.Context, id primitive.ObjectID) ([]models.Book, error) {
	if f.fail["BooksByAuthor"] {
		return nil, errStorage
	}
	return f.Store.BooksByAuthor(ctx, id)
}

func (f *failingCatalog) Ping(ctx context.Context) error {
	if f.fail["Ping"] {
		return errStorage
	}
	return f.Store.Ping(ctx)
}
