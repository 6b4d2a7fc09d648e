package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarylite/internal/config"
	"github.com/mrlokans/librarylite/internal/database"
	"github.com/mrlokans/librarylite/internal/database/books"
	"github.com/mrlokans/librarylite/internal/entities"
)

const (
	testTemplatesPath = "../../templates"
	testStaticPath    = "../../static"
)

var errStoreDown = errors.New("store down")

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookStore is an in-memory BookStore. Setting err makes every call fail.
type fakeBookStore struct {
	mu     sync.Mutex
	books  map[uint]entities.Book
	nextID uint
	err    error
}

func newFakeBookStore(seed ...entities.BookFields) *fakeBookStore {
	store := &fakeBookStore{books: make(map[uint]entities.Book)}
	for _, fields := range seed {
		_, _ = store.Create(context.Background(), fields)
	}
	return store
}

func (s *fakeBookStore) sorted(desc bool) []entities.Book {
	result := make([]entities.Book, 0, len(s.books))
	for _, book := range s.books {
		result = append(result, book)
	}
	sort.Slice(result, func(i, j int) bool {
		if desc {
			return result[i].ID > result[j].ID
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *fakeBookStore) List(ctx context.Context) ([]entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(false), nil
}

func (s *fakeBookStore) ListNewestFirst(ctx context.Context) ([]entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(true), nil
}

func (s *fakeBookStore) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	book, ok := s.books[id]
	if !ok {
		return nil, entities.ErrBookNotFound
	}
	return &book, nil
}

func (s *fakeBookStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.books)), nil
}

func (s *fakeBookStore) Create(ctx context.Context, fields entities.BookFields) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	book := entities.Book{ID: s.nextID}
	fields.Apply(&book)
	s.books[book.ID] = book
	return &book, nil
}

func (s *fakeBookStore) Update(ctx context.Context, id uint, fields entities.BookFields) (*entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	book, ok := s.books[id]
	if !ok {
		return nil, entities.ErrBookNotFound
	}
	fields.Apply(&book)
	s.books[id] = book
	return &book, nil
}

func (s *fakeBookStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.books[id]; !ok {
		return entities.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

// fakeFlasher records flashed messages and pops them in order.
type fakeFlasher struct {
	messages []string
}

func (f *fakeFlasher) Flash(ctx context.Context, message string) {
	f.messages = append(f.messages, message)
}

func (f *fakeFlasher) PopFlash(ctx context.Context) string {
	if len(f.messages) == 0 {
		return ""
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg
}

// setupTestDB opens a fresh SQLite database in a temporary directory.
func setupTestDB(t *testing.T) (*database.Database, *books.Repository) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "librarylite.db")

	db, err := database.NewDatabase(config.Database{Driver: config.DriverSQLite, Path: dbPath}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, books.NewRepository(db)
}

// newHTMLEngine returns a bare engine with the application templates loaded.
func newHTMLEngine(t *testing.T) *gin.Engine {
	t.Helper()
	tmpl, err := LoadTemplates(testTemplatesPath)
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func postForm(router http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
