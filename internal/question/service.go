package question

import (
	"context"
	"fmt"
)

// searchCategorySentinel is the constant current_category value reported by
// search responses, kept for client compatibility.
const searchCategorySentinel = 1

// QuestionStore is the persistence boundary for question records.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Create(ctx context.Context, params CreateParams) (int, error)
	DeleteByID(ctx context.Context, id int) error
	FirstMatching(ctx context.Context, categoryID int, excludeIDs []int) (Question, error)
}

// CategoryStore is the read-only category catalog.
type CategoryStore interface {
	ListAll(ctx context.Context) ([]Category, error)
}

// CatalogCache fronts the category catalog (implemented by the Redis-backed
// Cache). The catalog is immutable in this service, so staleness is bounded
// only by the cache TTL.
type CatalogCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

// Service implements question access and quiz selection on top of the stores.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	cache      CatalogCache
	policy     ExclusionPolicy
	pageSize   int
}

// ServiceOptions tunes listing and quiz-selection behavior.
type ServiceOptions struct {
	// PageSize defaults to DefaultPageSize when zero.
	PageSize int
	// Policy defaults to ExcludeLast.
	Policy ExclusionPolicy
}

func NewService(questions QuestionStore, categories CategoryStore, cache CatalogCache, opts ServiceOptions) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		policy:     opts.Policy,
		pageSize:   pageSize,
	}
}

// Categories returns the full category catalog. An empty catalog is an error,
// not an empty result.
func (s *Service) Categories(ctx context.Context) (CategoriesResponse, error) {
	categories, err := s.catalog(ctx)
	if err != nil {
		return CategoriesResponse{}, err
	}
	if len(categories) == 0 {
		return CategoriesResponse{}, fmt.Errorf("category catalog is empty: %w", ErrNotFound)
	}
	return CategoriesResponse{Categories: catalogMap(categories)}, nil
}

// Questions returns one page of the full question listing together with the
// total count and the category catalog.
func (s *Service) Questions(ctx context.Context, page int) (QuestionsResponse, error) {
	questions, err := s.questions.ListAll(ctx)
	if err != nil {
		return QuestionsResponse{}, err
	}
	categories, err := s.catalog(ctx)
	if err != nil {
		return QuestionsResponse{}, err
	}
	if len(questions) == 0 || len(categories) == 0 {
		return QuestionsResponse{}, fmt.Errorf("no questions or categories: %w", ErrNotFound)
	}
	return QuestionsResponse{
		Questions:       Paginate(page, s.pageSize, questions),
		TotalQuestions:  len(questions),
		Categories:      catalogMap(categories),
		CurrentCategory: AnyCategory,
	}, nil
}

// Search returns every question whose prompt contains term. An empty term is
// rejected rather than treated as match-everything.
func (s *Service) Search(ctx context.Context, term string) (ListResponse, error) {
	if term == "" {
		return ListResponse{}, fmt.Errorf("empty search term: %w", ErrUnprocessable)
	}
	questions, err := s.questions.Search(ctx, term)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: searchCategorySentinel,
	}, nil
}

// ByCategory returns every question in the given category. A category with no
// questions yields an empty listing, not an error.
func (s *Service) ByCategory(ctx context.Context, categoryID int) (ListResponse, error) {
	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: categoryID,
	}, nil
}

// Create stores a new question and returns its assigned id.
func (s *Service) Create(ctx context.Context, params CreateParams) (int, error) {
	return s.questions.Create(ctx, params)
}

// Delete removes the question with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.questions.DeleteByID(ctx, id)
}

// NextQuizQuestion picks the next question for a quiz turn: the first
// candidate in id order matching the category filter (AnyCategory matches
// all) after applying the exclusion policy to previous. The pick is
// deterministic for an unmutated store.
func (s *Service) NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (Question, error) {
	return s.questions.FirstMatching(ctx, categoryID, s.policy.Exclusions(previous))
}

func (s *Service) catalog(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && len(categories) > 0 {
		_ = s.cache.Set(ctx, categories)
	}
	return categories, nil
}
