package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViews_Page(t *testing.T) {
	views := newTestViews(t)

	w := httptest.NewRecorder()
	views.Page("home")(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, link := range []string{`href="/upload"`, `href="/assets"`, `href="/ticket"`, `href="/tickets"`} {
		assert.Contains(t, body, link)
	}
}

func TestViews_UnknownTemplate(t *testing.T) {
	logger, hook := newTestLogger()
	views, err := NewViews(logger)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	views.Render(w, http.StatusOK, "does_not_exist", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to render template", hook.LastEntry().Message)
}
