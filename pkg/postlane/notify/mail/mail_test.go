package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/postlane/postlane/pkg/postlane/notify/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := mail.New(mail.Config{FromEmail: "noreply@example.com"})
	assert.Error(t, err, "missing API key")

	_, err = mail.New(mail.Config{APIKey: "key"})
	assert.Error(t, err, "missing from address")
}

func TestSend(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v3/mail/send", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink, err := mail.New(mail.Config{
		APIKey:    "secret",
		BaseURL:   srv.URL,
		FromEmail: "noreply@example.com",
		FromName:  "Postlane",
	})
	require.NoError(t, err)

	err = sink.Send(context.Background(), "asha@example.com", "Post created", "hello")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "Post created", gotPayload["subject"])
}

func TestSendReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad address"}]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	sink, err := mail.New(mail.Config{
		APIKey:    "secret",
		BaseURL:   srv.URL,
		FromEmail: "noreply@example.com",
	})
	require.NoError(t, err)

	err = sink.Send(context.Background(), "broken", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
