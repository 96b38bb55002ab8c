package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/araquiz/backend/internal/models"
)

// ScoreRecorder is the persistence collaborator notified when a run
// completes. A recording failure is reported to the caller but never touches
// session state.
type ScoreRecorder interface {
	AddScore(userID int64, delta int) error
	RecordRun(userID int64, category models.Category, score int) error
}

type Handler struct {
	manager *Manager
	scores  ScoreRecorder
}

func NewHandler(manager *Manager, scores ScoreRecorder) *Handler {
	return &Handler{manager: manager, scores: scores}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidCategories[req.Category] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "category must be 'science', 'literature', 'religion', 'geography', or 'history'"})
		return
	}

	s, err := h.manager.Start(r.Context(), userID, req.Category)
	if err != nil {
		log.Printf("[quiz] StartQuiz fetch failed for user %d: %v", userID, err)
		writeQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stateResponse(s))
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(s))
}

func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SelectOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.OptionIndex == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "option_index is required"})
		return
	}

	if err := s.SelectOption(*req.OptionIndex); err != nil {
		writeQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(s))
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	s, ok := h.manager.Get(userID)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No active quiz. Start one first"})
		return
	}

	result, err := s.Submit()
	if err != nil {
		writeQuizError(w, err)
		return
	}

	resp := models.SubmitAnswerResponse{
		Correct:      result.Correct,
		CorrectIndex: result.CorrectIndex,
		Explanation:  result.Explanation,
		ScoreDelta:   result.ScoreDelta,
		Score:        result.Score,
		Streak:       result.Streak,
		Difficulty:   result.Difficulty,
		Completed:    result.Completed,
	}

	if result.Completed {
		final := result.Score
		resp.FinalScore = &final

		recorded := true
		if err := h.scores.AddScore(userID, final); err != nil {
			log.Printf("WARN: [quiz] failed to record score for user %d: %v", userID, err)
			recorded = false
		} else if err := h.scores.RecordRun(userID, s.Category(), final); err != nil {
			log.Printf("WARN: [quiz] failed to record run for user %d: %v", userID, err)
			recorded = false
		}
		resp.ScoreRecorded = &recorded
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Next(r.Context()); err != nil {
		writeQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(s))
}

func (h *Handler) RestartQuiz(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Restart(r.Context()); err != nil {
		log.Printf("[quiz] RestartQuiz fetch failed: %v", err)
		writeQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(s))
}

// session resolves the caller's session or writes the error response.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}

	s, ok := h.manager.Get(userID)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No active quiz. Start one first"})
		return nil, false
	}
	return s, true
}

func stateResponse(s *Session) models.QuizStateResponse {
	st := s.State()

	resp := models.QuizStateResponse{
		SessionID:      st.ID,
		Category:       st.Category,
		Difficulty:     st.Difficulty,
		Score:          st.Score,
		Streak:         st.Streak,
		QuestionNumber: st.CurrentIndex + 1,
		TotalQuestions: st.TotalQuestions,
		Progress:       st.Progress,
		SelectedOption: st.SelectedOption,
		Answered:       st.Answered,
		Completed:      st.Completed,
		Stalled:        st.Stalled,
	}

	if st.Question != nil {
		resp.Question = &models.QuestionView{
			Text:    st.Question.Text,
			Options: st.Question.Options,
		}
	}

	return resp
}

func writeQuizError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, ErrGenerationFailed):
		status = http.StatusBadGateway
	case errors.Is(err, ErrNoQuestion):
		status = http.StatusConflict
	}
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
