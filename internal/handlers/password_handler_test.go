package handlers

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise/internal/web"
)

func TestReset_BindFailureIsLoggedAndFormRerendered(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	tmpl, err := web.Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.POST("/reset_password", NewPasswordHandler(nil, 6).Reset)

	req := httptest.NewRequest(http.MethodPost, "/reset_password", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required")
	assert.Contains(t, buf.String(), "[password-reset] bind failed")
}
