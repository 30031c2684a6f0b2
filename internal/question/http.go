package question

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/plute10/trivia/internal/logging"
	httperrors "github.com/plute10/trivia/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoints for question operations.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

// CreateQuestionRequest is the POST /v1/questions payload. When Search is set
// the request is dispatched to search instead of create, mirroring the
// historical single-endpoint behavior.
type CreateQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   int     `json:"category"`
	Difficulty int     `json:"difficulty"`
	Search     *string `json:"search,omitempty"`
}

// QuizRequest is the POST /v1/quizzes payload.
type QuizRequest struct {
	PreviousQuestions []int `json:"previous_questions"`
	QuizCategory      struct {
		ID int `json:"id"`
	} `json:"quiz_category"`
}

type categoriesPayload struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

type questionsPayload struct {
	Success bool `json:"success"`
	QuestionsResponse
}

type listPayload struct {
	Success bool `json:"success"`
	ListResponse
}

type deletePayload struct {
	Success    bool `json:"success"`
	QuestionID int  `json:"question_id"`
}

type quizPayload struct {
	Success  bool     `json:"success"`
	Question Question `json:"question"`
}

// GetCategories handles GET /v1/categories.
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list categories")
		return
	}
	h.respondJSON(w, http.StatusOK, categoriesPayload{Success: true, Categories: resp.Categories})
}

// GetQuestions handles GET /v1/questions?page=N.
func (h *HTTPHandlers) GetQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperrors.RespondBadRequest(w, "page must be a positive integer")
			return
		}
		page = parsed
	}

	resp, err := h.service.Questions(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, r, err, "list questions")
		return
	}
	h.respondJSON(w, http.StatusOK, questionsPayload{Success: true, QuestionsResponse: resp})
}

// PostQuestions handles POST /v1/questions: creates a question, or searches
// when the payload carries a search term.
func (h *HTTPHandlers) PostQuestions(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, "invalid JSON payload")
		return
	}

	if req.Search != nil {
		resp, err := h.service.Search(r.Context(), *req.Search)
		if err != nil {
			h.respondServiceError(w, r, err, "search questions")
			return
		}
		h.respondJSON(w, http.StatusOK, listPayload{Success: true, ListResponse: resp})
		return
	}

	if _, err := h.service.Create(r.Context(), CreateParams{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}); err != nil {
		h.respondServiceError(w, r, err, "create question")
		return
	}
	h.respondJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

// DeleteQuestion handles DELETE /v1/questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, "question id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "delete question")
		return
	}
	h.respondJSON(w, http.StatusOK, deletePayload{Success: true, QuestionID: id})
}

// GetQuestionsByCategory handles GET /v1/categories/{id}/questions.
func (h *HTTPHandlers) GetQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, "category id must be an integer")
		return
	}

	resp, err := h.service.ByCategory(r.Context(), categoryID)
	if err != nil {
		h.respondServiceError(w, r, err, "list questions by category")
		return
	}
	h.respondJSON(w, http.StatusOK, listPayload{Success: true, ListResponse: resp})
}

// PostQuiz handles POST /v1/quizzes.
func (h *HTTPHandlers) PostQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, "invalid JSON payload")
		return
	}

	q, err := h.service.NextQuizQuestion(r.Context(), req.PreviousQuestions, req.QuizCategory.ID)
	if err != nil {
		h.respondServiceError(w, r, err, "pick quiz question")
		return
	}
	h.respondJSON(w, http.StatusOK, quizPayload{Success: true, Question: q})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case IsNotFound(err):
		httperrors.RespondNotFound(w, err.Error())
	case IsUnprocessable(err):
		httperrors.RespondUnprocessable(w, err.Error())
	default:
		logger := logging.FromContext(r.Context())
		if logger.GetLevel() == zerolog.Disabled {
			logger = h.logger
		}
		logger.Error().Err(err).Str("op", op).Msg("question operation failed")
		httperrors.RespondInternalError(w, "internal error")
	}
}
