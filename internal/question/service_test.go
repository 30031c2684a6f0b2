package question

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuestionStore struct {
	listAll        func(ctx context.Context) ([]Question, error)
	listByCategory func(ctx context.Context, categoryID int) ([]Question, error)
	search         func(ctx context.Context, term string) ([]Question, error)
	create         func(ctx context.Context, params CreateParams) (int, error)
	deleteByID     func(ctx context.Context, id int) error
	firstMatching  func(ctx context.Context, categoryID int, excludeIDs []int) (Question, error)
}

func (s *stubQuestionStore) ListAll(ctx context.Context) ([]Question, error) {
	return s.listAll(ctx)
}

func (s *stubQuestionStore) ListByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	return s.listByCategory(ctx, categoryID)
}

func (s *stubQuestionStore) Search(ctx context.Context, term string) ([]Question, error) {
	return s.search(ctx, term)
}

func (s *stubQuestionStore) Create(ctx context.Context, params CreateParams) (int, error) {
	return s.create(ctx, params)
}

func (s *stubQuestionStore) DeleteByID(ctx context.Context, id int) error {
	return s.deleteByID(ctx, id)
}

func (s *stubQuestionStore) FirstMatching(ctx context.Context, categoryID int, excludeIDs []int) (Question, error) {
	return s.firstMatching(ctx, categoryID, excludeIDs)
}

type stubCategoryStore struct {
	calls      int
	categories []Category
	err        error
}

func (s *stubCategoryStore) ListAll(ctx context.Context) ([]Category, error) {
	s.calls++
	return s.categories, s.err
}

type memoryCatalogCache struct {
	categories []Category
}

func (c *memoryCatalogCache) Get(_ context.Context) ([]Category, error) {
	return c.categories, nil
}

func (c *memoryCatalogCache) Set(_ context.Context, categories []Category) error {
	c.categories = categories
	return nil
}

func sampleCategories() []Category {
	return []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
	}
}

func TestCategoriesEmptyCatalogIsNotFound(t *testing.T) {
	service := NewService(&stubQuestionStore{}, &stubCategoryStore{}, nil, ServiceOptions{})

	_, err := service.Categories(context.Background())

	assert.True(t, IsNotFound(err))
}

func TestCategoriesBuildsIDToLabelMap(t *testing.T) {
	service := NewService(&stubQuestionStore{}, &stubCategoryStore{categories: sampleCategories()}, nil, ServiceOptions{})

	resp, err := service.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art"}, resp.Categories)
}

func TestCategoriesHitsCacheBeforeStore(t *testing.T) {
	store := &stubCategoryStore{categories: sampleCategories()}
	cache := &memoryCatalogCache{}
	service := NewService(&stubQuestionStore{}, store, cache, ServiceOptions{})

	_, err := service.Categories(context.Background())
	require.NoError(t, err)
	_, err = service.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, store.calls, "second call should be served from cache")
	assert.Equal(t, sampleCategories(), cache.categories)
}

func TestQuestionsPaginatesAndCounts(t *testing.T) {
	all := makeQuestions(15)
	questions := &stubQuestionStore{
		listAll: func(context.Context) ([]Question, error) { return all, nil },
	}
	service := NewService(questions, &stubCategoryStore{categories: sampleCategories()}, nil, ServiceOptions{})

	page1, err := service.Questions(context.Background(), 1)
	require.NoError(t, err)
	page2, err := service.Questions(context.Background(), 2)
	require.NoError(t, err)

	assert.Len(t, page1.Questions, 10)
	assert.Len(t, page2.Questions, 5)
	assert.Equal(t, 15, page1.TotalQuestions)
	assert.Equal(t, AnyCategory, page1.CurrentCategory)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art"}, page1.Categories)

	for _, q1 := range page1.Questions {
		for _, q2 := range page2.Questions {
			assert.NotEqual(t, q1.ID, q2.ID)
		}
	}
}

func TestQuestionsEmptyStoreIsNotFound(t *testing.T) {
	questions := &stubQuestionStore{
		listAll: func(context.Context) ([]Question, error) { return []Question{}, nil },
	}
	service := NewService(questions, &stubCategoryStore{categories: sampleCategories()}, nil, ServiceOptions{})

	_, err := service.Questions(context.Background(), 1)

	assert.True(t, IsNotFound(err))
}

func TestQuestionsEmptyCatalogIsNotFound(t *testing.T) {
	questions := &stubQuestionStore{
		listAll: func(context.Context) ([]Question, error) { return makeQuestions(3), nil },
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{})

	_, err := service.Questions(context.Background(), 1)

	assert.True(t, IsNotFound(err))
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	searched := false
	questions := &stubQuestionStore{
		search: func(context.Context, string) ([]Question, error) {
			searched = true
			return nil, nil
		},
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{})

	_, err := service.Search(context.Background(), "")

	assert.True(t, IsUnprocessable(err))
	assert.False(t, searched, "empty term must not reach the store")
}

func TestSearchReportsSentinelCategory(t *testing.T) {
	matches := []Question{{ID: 4, Question: "this is a test", Answer: "Hi", Category: 1, Difficulty: 4}}
	questions := &stubQuestionStore{
		search: func(_ context.Context, term string) ([]Question, error) {
			assert.Equal(t, "test", term)
			return matches, nil
		},
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{})

	resp, err := service.Search(context.Background(), "test")

	require.NoError(t, err)
	assert.Equal(t, matches, resp.Questions)
	assert.Equal(t, 1, resp.TotalQuestions)
	assert.Equal(t, searchCategorySentinel, resp.CurrentCategory)
}

func TestByCategoryEmptyListIsSuccess(t *testing.T) {
	questions := &stubQuestionStore{
		listByCategory: func(_ context.Context, categoryID int) ([]Question, error) {
			assert.Equal(t, 2, categoryID)
			return []Question{}, nil
		},
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{})

	resp, err := service.ByCategory(context.Background(), 2)

	require.NoError(t, err)
	assert.Empty(t, resp.Questions)
	assert.Equal(t, 0, resp.TotalQuestions)
	assert.Equal(t, 2, resp.CurrentCategory)
}

func TestNextQuizQuestionDefaultExcludesOnlyLast(t *testing.T) {
	var gotCategory int
	var gotExclusions []int
	questions := &stubQuestionStore{
		firstMatching: func(_ context.Context, categoryID int, excludeIDs []int) (Question, error) {
			gotCategory = categoryID
			gotExclusions = excludeIDs
			return Question{ID: 1}, nil
		},
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{})

	_, err := service.NextQuizQuestion(context.Background(), []int{3, 5}, AnyCategory)

	require.NoError(t, err)
	assert.Equal(t, AnyCategory, gotCategory)
	assert.Equal(t, []int{5}, gotExclusions, "only the last previous id is excluded")
}

func TestNextQuizQuestionExcludeAllPolicy(t *testing.T) {
	var gotExclusions []int
	questions := &stubQuestionStore{
		firstMatching: func(_ context.Context, categoryID int, excludeIDs []int) (Question, error) {
			gotExclusions = excludeIDs
			return Question{ID: 7}, nil
		},
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{Policy: ExcludeAll})

	_, err := service.NextQuizQuestion(context.Background(), []int{3, 5}, 2)

	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, gotExclusions)
}

func TestNextQuizQuestionIsDeterministic(t *testing.T) {
	store := newMemoryStore(makeQuestions(6))
	service := NewService(store, &stubCategoryStore{categories: sampleCategories()}, nil, ServiceOptions{})

	first, err := service.NextQuizQuestion(context.Background(), nil, AnyCategory)
	require.NoError(t, err)
	second, err := service.NextQuizQuestion(context.Background(), nil, AnyCategory)
	require.NoError(t, err)

	assert.Equal(t, first, second, "unmutated store must yield the same pick")
	assert.Equal(t, 1, first.ID, "first candidate in id order")
}

func TestNextQuizQuestionSkipsLastPrevious(t *testing.T) {
	store := newMemoryStore(makeQuestions(6))
	service := NewService(store, &stubCategoryStore{categories: sampleCategories()}, nil, ServiceOptions{})

	q, err := service.NextQuizQuestion(context.Background(), []int{5}, AnyCategory)

	require.NoError(t, err)
	assert.NotEqual(t, 5, q.ID)
}

// The intuitive requirement is that no previously served question ever
// repeats. The default ExcludeLast policy deliberately does not guarantee
// this; switch the default to ExcludeAll to make this pass.
func TestNextQuizQuestionNeverRepeatsAnyPrevious(t *testing.T) {
	t.Skip("default policy only excludes the last previous id; id 1 repeats after previous [1, 5]")

	store := newMemoryStore(makeQuestions(6))
	service := NewService(store, &stubCategoryStore{categories: sampleCategories()}, nil, ServiceOptions{})

	q, err := service.NextQuizQuestion(context.Background(), []int{1, 5}, AnyCategory)

	require.NoError(t, err)
	assert.NotContains(t, []int{1, 5}, q.ID)
}

func TestNextQuizQuestionExhaustedCandidatesIsNotFound(t *testing.T) {
	only := Question{ID: 9, Question: "solo", Answer: "a", Category: 3, Difficulty: 1}
	store := newMemoryStore([]Question{only})
	service := NewService(store, &stubCategoryStore{}, nil, ServiceOptions{})

	_, err := service.NextQuizQuestion(context.Background(), []int{9}, 3)

	assert.True(t, IsNotFound(err))
}

func TestCreateAndDeletePassThroughStoreErrors(t *testing.T) {
	storeErr := errors.New("boom")
	questions := &stubQuestionStore{
		create:     func(context.Context, CreateParams) (int, error) { return 0, storeErr },
		deleteByID: func(context.Context, int) error { return storeErr },
	}
	service := NewService(questions, &stubCategoryStore{}, nil, ServiceOptions{})

	_, err := service.Create(context.Background(), CreateParams{})
	assert.ErrorIs(t, err, storeErr)

	assert.ErrorIs(t, service.Delete(context.Background(), 1), storeErr)
}
