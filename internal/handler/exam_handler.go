package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lzradio/lzradio-backend/internal/exam"
	"github.com/lzradio/lzradio-backend/internal/model"
	"github.com/lzradio/lzradio-backend/internal/repository"
	"github.com/lzradio/lzradio-backend/internal/response"
	"github.com/lzradio/lzradio-backend/internal/service"
	"github.com/lzradio/lzradio-backend/internal/validator"
)

// ExamHandler handles question browsing and the exam session lifecycle.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ListQuestions godoc
// GET /api/v1/exam/questions?class=1&sections=1,2&randomize=true
func (h *ExamHandler) ListQuestions(c *gin.Context) {
	class, err := strconv.Atoi(c.DefaultQuery("class", "1"))
	if err != nil || class < 1 || class > 2 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	sections, ok := parseSections(c.Query("sections"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	randomize := c.Query("randomize") == "true"
	questions, err := h.examService.ListQuestions(c.Request.Context(), class, sections, randomize)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CountQuestions godoc
// GET /api/v1/exam/questions/count?class=1
// Reports the per-section size of the question bank, so clients can
// offer section pickers without fetching the whole bank.
func (h *ExamHandler) CountQuestions(c *gin.Context) {
	class, err := strconv.Atoi(c.DefaultQuery("class", "1"))
	if err != nil || class < 1 || class > 2 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	counts, err := h.examService.QuestionCounts(c.Request.Context(), class)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	response.Success(c, http.StatusOK, gin.H{"sections": counts, "total": total})
}

// StartSession godoc
// POST /api/v1/exam/sessions
func (h *ExamHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess, err := h.examService.StartSession(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
		} else {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, sessionState(sess))
}

// GetSession godoc
// GET /api/v1/exam/sessions/:session_id
func (h *ExamHandler) GetSession(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, sessionState(sess))
}

// SelectAnswer godoc
// POST /api/v1/exam/sessions/:session_id/answer
func (h *ExamHandler) SelectAnswer(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if sess.State() != exam.StateInProgress {
		response.Fail(c, http.StatusConflict, response.ErrSessionNotActive)
		return
	}

	sess.SelectAnswer(req.ChoiceKey)
	response.Success(c, http.StatusOK, sessionState(sess))
}

// Navigate godoc
// POST /api/v1/exam/sessions/:session_id/navigate
func (h *ExamHandler) Navigate(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	switch req.Direction {
	case "next":
		sess.GoNext()
	case "previous":
		sess.GoPrevious()
	case "jump":
		if req.Index == nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		sess.JumpTo(*req.Index)
	}

	response.Success(c, http.StatusOK, sessionState(sess))
}

// Submit godoc
// POST /api/v1/exam/sessions/:session_id/submit
func (h *ExamHandler) Submit(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	if sess.Mode() != exam.ModeSimulated {
		response.Fail(c, http.StatusConflict, response.ErrPrepHasNoResult)
		return
	}
	if sess.State() != exam.StateInProgress {
		response.Fail(c, http.StatusConflict, response.ErrSessionNotActive)
		return
	}

	sess.Submit()
	response.Success(c, http.StatusOK, sessionState(sess))
}

// EnterReview godoc
// POST /api/v1/exam/sessions/:session_id/review
func (h *ExamHandler) EnterReview(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	if sess.State() != exam.StateSubmitted {
		response.Fail(c, http.StatusConflict, response.ErrSessionNotSubmitted)
		return
	}

	sess.EnterReview()
	response.Success(c, http.StatusOK, reviewState(sess))
}

// PauseTimer godoc
// POST /api/v1/exam/sessions/:session_id/pause
func (h *ExamHandler) PauseTimer(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}
	sess.PauseTimer()
	response.Success(c, http.StatusOK, sessionState(sess))
}

// ResumeTimer godoc
// POST /api/v1/exam/sessions/:session_id/resume
func (h *ExamHandler) ResumeTimer(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}
	sess.ResumeTimer()
	response.Success(c, http.StatusOK, sessionState(sess))
}

// CloseSession godoc
// DELETE /api/v1/exam/sessions/:session_id
func (h *ExamHandler) CloseSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.CloseSession(id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetRemaining godoc
// GET /api/v1/exam/sessions/:session_id/remaining
// Serves the countdown for reconnecting clients: the live value while
// the session is in memory, the last cached value after a restart.
func (h *ExamHandler) GetRemaining(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if sess, err := h.examService.GetSession(id); err == nil {
		remaining := sess.RemainingSeconds()
		if remaining < 0 {
			// Prep sessions are untimed.
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"remaining_seconds": remaining,
			"remaining_display": exam.FormatTime(remaining),
			"source":            "live",
		})
		return
	}

	remaining := h.examService.CachedRemaining(c.Request.Context(), id)
	if remaining < 0 {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	data := gin.H{
		"remaining_seconds": remaining,
		"remaining_display": exam.FormatTime(remaining),
		"source":            "cache",
	}
	// Tells a reconnecting client the evicted session already expired
	// and auto-submitted.
	if state := h.examService.CachedState(c.Request.Context(), id); state != "" {
		data["state"] = state
	}
	response.Success(c, http.StatusOK, data)
}

// GetAttempt godoc
// GET /api/v1/exam/sessions/:session_id/attempt
// Returns the persisted attempt for a finished session, 404 until the
// persistence worker has flushed it.
func (h *ExamHandler) GetAttempt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	attempt, err := h.examService.AttemptBySession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAttemptNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		} else {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// ListAttempts godoc
// GET /api/v1/exam/attempts?limit=20
func (h *ExamHandler) ListAttempts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 20
	}

	attempts, err := h.examService.RecentAttempts(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if attempts == nil {
		attempts = []model.ExamAttempt{}
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}

func (h *ExamHandler) lookupSession(c *gin.Context) (*exam.Session, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	sess, err := h.examService.GetSession(id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return nil, false
	}
	return sess, true
}

// sessionState builds the client-facing snapshot of a session. The
// correct answers stay hidden until review.
func sessionState(sess *exam.Session) gin.H {
	state := gin.H{
		"session_id":      sess.ID(),
		"mode":            sess.Mode(),
		"state":           sess.State(),
		"current_index":   sess.CurrentIndex(),
		"total_questions": len(sess.Questions()),
		"answers":         sess.Answers(),
		"progress":        sess.Progress(),
	}

	if q := sess.CurrentQuestion(); q != nil {
		state["question"] = q.ForClient()
	}

	if sess.Mode() == exam.ModeSimulated {
		remaining := sess.RemainingSeconds()
		state["remaining_seconds"] = remaining
		state["remaining_display"] = exam.FormatTime(remaining)
		state["warning_level"] = exam.TimerWarningLevel(remaining)
	}

	if results := sess.Results(); results != nil {
		state["results"] = results
	}

	return state
}

// reviewState extends the snapshot with the full questions and the
// per-question verdicts.
func reviewState(sess *exam.Session) gin.H {
	state := sessionState(sess)

	questions := sess.Questions()
	answers := sess.Answers()
	statuses := make([]exam.AnswerStatus, len(questions))
	for i, q := range questions {
		var answer *string
		if a, ok := answers[i]; ok {
			answer = &a
		}
		statuses[i] = exam.StatusFor(q, answer)
	}

	state["questions"] = questions
	state["statuses"] = statuses
	return state
}

// parseSections parses "1,2,3" into a section slice. Empty means all.
func parseSections(raw string) ([]int, bool) {
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	sections := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > 3 {
			return nil, false
		}
		sections = append(sections, n)
	}
	return sections, true
}
