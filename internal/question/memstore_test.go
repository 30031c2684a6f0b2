package question

import (
	"context"
	"fmt"
	"strings"
)

// memoryStore is an in-memory QuestionStore with the same contract as the
// Postgres repository, used by service and handler tests.
type memoryStore struct {
	questions []Question
	nextID    int
}

var _ QuestionStore = (*memoryStore)(nil)

func newMemoryStore(questions []Question) *memoryStore {
	nextID := 1
	for _, q := range questions {
		if q.ID >= nextID {
			nextID = q.ID + 1
		}
	}
	return &memoryStore{questions: questions, nextID: nextID}
}

func (s *memoryStore) ListAll(context.Context) ([]Question, error) {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *memoryStore) ListByCategory(_ context.Context, categoryID int) ([]Question, error) {
	out := []Question{}
	for _, q := range s.questions {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) Search(_ context.Context, term string) ([]Question, error) {
	out := []Question{}
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) Create(_ context.Context, params CreateParams) (int, error) {
	id := s.nextID
	s.nextID++
	s.questions = append(s.questions, Question{
		ID:         id,
		Question:   params.Question,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	})
	return id, nil
}

func (s *memoryStore) DeleteByID(_ context.Context, id int) error {
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("question %d: %w", id, ErrNotFound)
}

func (s *memoryStore) FirstMatching(_ context.Context, categoryID int, excludeIDs []int) (Question, error) {
	excluded := make(map[int]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	for _, q := range s.questions {
		if categoryID != AnyCategory && q.Category != categoryID {
			continue
		}
		if _, ok := excluded[q.ID]; ok {
			continue
		}
		return q, nil
	}
	return Question{}, fmt.Errorf("no quiz candidate left: %w", ErrNotFound)
}
