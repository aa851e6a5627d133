package services

import (
	"errors"
	"sync"

	"showsync/internal/models"
	"showsync/pkg/logger"
)

// memCredentials is an in-memory CredentialStore for tests.
type memCredentials struct {
	mu    sync.Mutex
	token string
}

func (m *memCredentials) SaveCredential(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memCredentials) LoadCredential() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memCredentials) ClearCredential() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// stubAccount is a scriptable AccountService recording its calls.
type stubAccount struct {
	mu        sync.Mutex
	remote    map[int]struct{}
	failNext  error
	calls     []string
	fetchErr  error
	loginResp string

	// mutateGate, when non-nil, blocks each add/remove until it receives
	mutateGate chan struct{}
}

func newStubAccount(ids ...int) *stubAccount {
	s := &stubAccount{remote: make(map[int]struct{}), loginResp: "token-1"}
	for _, id := range ids {
		s.remote[id] = struct{}{}
	}
	return s
}

func (s *stubAccount) Login(models.Credentials) (string, error) {
	return s.loginResp, nil
}

func (s *stubAccount) Register(models.Credentials) (string, error) {
	return s.loginResp, nil
}

func (s *stubAccount) FetchBookmarks(string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "fetch")
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	ids := make([]int, 0, len(s.remote))
	for id := range s.remote {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubAccount) AddBookmark(_ string, mediaID int) error {
	if s.mutateGate != nil {
		<-s.mutateGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "add")
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.remote[mediaID] = struct{}{}
	return nil
}

func (s *stubAccount) RemoveBookmark(_ string, mediaID int) error {
	if s.mutateGate != nil {
		<-s.mutateGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "remove")
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	delete(s.remote, mediaID)
	return nil
}

func (s *stubAccount) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// stubCatalog is a scriptable CatalogService. movies and series map
// identifiers to detail results; searches answers queries.
type stubCatalog struct {
	mu       sync.Mutex
	movies   map[int]models.MediaItem
	series   map[int]models.MediaItem
	searches map[string][]models.MediaItem
	trailers map[int]string
	queries  []string

	// searchGate, when non-nil, blocks each search until it receives
	searchGate chan struct{}
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		movies:   make(map[int]models.MediaItem),
		series:   make(map[int]models.MediaItem),
		searches: make(map[string][]models.MediaItem),
		trailers: make(map[int]string),
	}
}

func (s *stubCatalog) ListTrending() []models.MediaItem       { return nil }
func (s *stubCatalog) ListTrendingMovies() []models.MediaItem { return nil }
func (s *stubCatalog) ListTrendingSeries() []models.MediaItem { return nil }
func (s *stubCatalog) ListDiscoverMovies() []models.MediaItem { return nil }
func (s *stubCatalog) ListDiscoverSeries() []models.MediaItem { return nil }

func (s *stubCatalog) SearchMovies(query string) []models.MediaItem {
	return s.search(query)
}

func (s *stubCatalog) SearchSeries(query string) []models.MediaItem {
	return s.search(query)
}

func (s *stubCatalog) search(query string) []models.MediaItem {
	if s.searchGate != nil {
		<-s.searchGate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	return s.searches[query]
}

func (s *stubCatalog) recordedQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}

func (s *stubCatalog) GetDetails(mediaType models.MediaType, id int) (*models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var source map[int]models.MediaItem
	switch mediaType {
	case models.MediaTypeMovie:
		source = s.movies
	case models.MediaTypeTV:
		source = s.series
	default:
		return nil, errors.New("unsupported media type")
	}

	if item, ok := source[id]; ok {
		tagged := item.WithMediaType(mediaType)
		return &tagged, nil
	}
	return nil, nil
}

func (s *stubCatalog) GetTrailerKey(_ models.MediaType, id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trailers[id]
}

func testLogger() logger.Logger {
	return logger.NewWithLevel(logger.LevelError)
}
