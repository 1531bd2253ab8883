package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, method, target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Params = params
	return c, w
}

func TestCountQuestionsRejectsUnknownClass(t *testing.T) {
	h := NewExamHandler(nil)
	for _, class := range []string{"0", "3", "abc"} {
		c, w := newTestContext(t, http.MethodGet, "/api/v1/exam/questions/count?class="+class, nil)
		h.CountQuestions(c)
		if w.Code != http.StatusBadRequest {
			t.Errorf("class %q: status = %d, want 400", class, w.Code)
		}
	}
}

func TestGetAttemptRejectsMalformedSessionID(t *testing.T) {
	h := NewExamHandler(nil)
	c, w := newTestContext(t, http.MethodGet, "/api/v1/exam/sessions/nope/attempt",
		gin.Params{{Key: "session_id", Value: "nope"}})
	h.GetAttempt(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetRemainingRejectsMalformedSessionID(t *testing.T) {
	h := NewExamHandler(nil)
	c, w := newTestContext(t, http.MethodGet, "/api/v1/exam/sessions/nope/remaining",
		gin.Params{{Key: "session_id", Value: "nope"}})
	h.GetRemaining(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
