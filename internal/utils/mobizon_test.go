package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DryRunSkipsHTTP(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hit = true }))
	defer srv.Close()

	c := NewClientWithOptions("", "", false)
	c.BaseURL = srv.URL
	resp, err := c.SendSMS(context.Background(), "9779876543210", "code 123456")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Code)
	assert.False(t, hit)
}

func TestClient_SendSMS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "key", r.PostForm.Get("apiKey"))
		assert.Equal(t, "9779876543210", r.PostForm.Get("recipient"))
		assert.Equal(t, "WW", r.PostForm.Get("from"))
		fmt.Fprint(w, `{"code":0,"data":{"messageId":"42"}}`)
	}))
	defer srv.Close()

	c := NewClientWithOptions("key", "WW", false)
	c.BaseURL = srv.URL
	resp, err := c.SendSMS(context.Background(), "9779876543210", "code 123456")
	require.NoError(t, err)
	assert.Equal(t, "42", resp.Data.MessageID)
}

func TestClient_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":1,"message":"bad recipient"}`)
	}))
	defer srv.Close()

	c := NewClientWithOptions("key", "", false)
	c.BaseURL = srv.URL
	_, err := c.SendSMS(context.Background(), "1", "x")
	assert.ErrorContains(t, err, "bad recipient")
}

func TestNewToken(t *testing.T) {
	a, err := NewToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := NewToken(0)
	require.NoError(t, err)
	assert.Len(t, b, 64)
	assert.NotEqual(t, a, b)
}
