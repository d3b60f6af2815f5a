// Package memstore keeps the catalog in process memory. It backs the
// STORE_BACKEND=memory mode and the handler tests; records are lost on exit.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// table holds one collection in insertion order.
type table[T any] struct {
	order []primitive.ObjectID
	rows  map[primitive.ObjectID]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]T)}
}

func (t *table[T]) all(keep func(T) bool) []T {
	out := []T{}
	for _, id := range t.order {
		if v := t.rows[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) get(id primitive.ObjectID) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		return v, store.ErrNotFound
	}
	return v, nil
}

func (t *table[T]) put(id primitive.ObjectID, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) replace(id primitive.ObjectID, v T) error {
	if _, ok := t.rows[id]; !ok {
		return store.ErrNotFound
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) remove(id primitive.ObjectID) error {
	if _, ok := t.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

type Store struct {
	mu        sync.RWMutex
	authors   *table[models.Author]
	books     *table[models.Book]
	genres    *table[models.Genre]
	instances *table[models.BookInstance]
}

func New() *Store {
	return &Store{
		authors:   newTable[models.Author](),
		books:     newTable[models.Book](),
		genres:    newTable[models.Genre](),
		instances: newTable[models.BookInstance](),
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyAuthor(a models.Author) models.Author {
	a.DateOfBirth = copyTime(a.DateOfBirth)
	a.DateOfDeath = copyTime(a.DateOfDeath)
	return a
}

func copyBook(b models.Book) models.Book {
	ids := make([]primitive.ObjectID, len(b.GenreIDs))
	copy(ids, b.GenreIDs)
	b.GenreIDs = ids
	b.Author = nil
	b.Genres = nil
	return b
}

func copyInstance(bi models.BookInstance) models.BookInstance {
	bi.DueBack = copyTime(bi.DueBack)
	bi.Book = nil
	return bi
}

func copyAll[T any](in []T, fn func(T) T) []T {
	for i := range in {
		in[i] = fn(in[i])
	}
	return in
}

// Authors

func (s *Store) AllAuthors(_ context.Context) ([]models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := copyAll(s.authors.all(nil), copyAuthor)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FamilyName != out[j].FamilyName {
			return out[i].FamilyName < out[j].FamilyName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (s *Store) AuthorByID(_ context.Context, id primitive.ObjectID) (*models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.authors.get(id)
	if err != nil {
		return nil, err
	}
	a = copyAuthor(a)
	return &a, nil
}

func (s *Store) InsertAuthor(_ context.Context, author *models.Author) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	a := copyAuthor(*author)
	a.ID = id
	s.authors.put(id, a)
	return id, nil
}

func (s *Store) ReplaceAuthor(_ context.Context, id primitive.ObjectID, author *models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	author.ID = id
	return s.authors.replace(id, copyAuthor(*author))
}

func (s *Store) DeleteAuthor(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authors.remove(id)
}

func (s *Store) CountAuthors(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.authors.rows)), nil
}

// Genres

func (s *Store) AllGenres(_ context.Context) ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.genres.all(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GenreByID(_ context.Context, id primitive.ObjectID) (*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, err := s.genres.get(id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) GenresByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := s.genres.all(func(g models.Genre) bool { return want[g.ID] })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GenreByName(_ context.Context, name string) (*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.genreNamed(name); ok {
		return &g, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) genreNamed(name string) (models.Genre, bool) {
	for _, g := range s.genres.rows {
		if g.Name == name {
			return g, true
		}
	}
	return models.Genre{}, false
}

func (s *Store) InsertGenre(_ context.Context, genre *models.Genre) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.genreNamed(genre.Name); taken {
		return primitive.NilObjectID, store.ErrDuplicate
	}
	id := primitive.NewObjectID()
	g := *genre
	g.ID = id
	s.genres.put(id, g)
	return id, nil
}

func (s *Store) ReplaceGenre(_ context.Context, id primitive.ObjectID, genre *models.Genre) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if other, taken := s.genreNamed(genre.Name); taken && other.ID != id {
		return store.ErrDuplicate
	}
	genre.ID = id
	return s.genres.replace(id, *genre)
}

func (s *Store) DeleteGenre(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genres.remove(id)
}

func (s *Store) CountGenres(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.genres.rows)), nil
}

// Books

func (s *Store) AllBooks(_ context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAll(s.books.all(nil), copyBook), nil
}

func (s *Store) BookByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.books.get(id)
	if err != nil {
		return nil, err
	}
	b = copyBook(b)
	return &b, nil
}

func (s *Store) BooksByAuthor(_ context.Context, authorID primitive.ObjectID) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.books.all(func(b models.Book) bool { return b.AuthorID == authorID })
	return copyAll(out, copyBook), nil
}

func (s *Store) BooksByGenre(_ context.Context, genreID primitive.ObjectID) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.books.all(func(b models.Book) bool { return b.HasGenre(genreID) })
	return copyAll(out, copyBook), nil
}

func (s *Store) InsertBook(_ context.Context, book *models.Book) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	b := copyBook(*book)
	b.ID = id
	s.books.put(id, b)
	return id, nil
}

func (s *Store) ReplaceBook(_ context.Context, id primitive.ObjectID, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = id
	return s.books.replace(id, copyBook(*book))
}

func (s *Store) DeleteBook(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.remove(id)
}

func (s *Store) CountBooks(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.books.rows)), nil
}

// BookInstances

func (s *Store) AllBookInstances(_ context.Context) ([]models.BookInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAll(s.instances.all(nil), copyInstance), nil
}

func (s *Store) BookInstanceByID(_ context.Context, id primitive.ObjectID) (*models.BookInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bi, err := s.instances.get(id)
	if err != nil {
		return nil, err
	}
	bi = copyInstance(bi)
	return &bi, nil
}

func (s *Store) InstancesByBook(_ context.Context, bookID primitive.ObjectID) ([]models.BookInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.instances.all(func(bi models.BookInstance) bool { return bi.BookID == bookID })
	return copyAll(out, copyInstance), nil
}

func (s *Store) InsertBookInstance(_ context.Context, bi *models.BookInstance) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	c := copyInstance(*bi)
	c.ID = id
	s.instances.put(id, c)
	return id, nil
}

func (s *Store) ReplaceBookInstance(_ context.Context, id primitive.ObjectID, bi *models.BookInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bi.ID = id
	return s.instances.replace(id, copyInstance(*bi))
}

func (s *Store) DeleteBookInstance(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instances.remove(id)
}

func (s *Store) CountBookInstances(_ context.Context, status string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, bi := range s.instances.rows {
		if status == "" || bi.Status == status {
			n++
		}
	}
	return int64(n), nil
}

// Ping always succeeds; it lets the health check treat both backends alike.
func (s *Store) Ping(_ context.Context) error {
	return nil
}
