package brevo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/brevo"
)

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("posts the transactional payload", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		m := brevo.NewMailer("test-key",
			brevo.WithBaseURL(srv.URL),
			brevo.WithSender("Maya", "maya@assistant.example.com"))

		err := m.Send(context.Background(), "priya@example.com", "Hello", "<p>Hi</p>")
		require.NoError(t, err)

		assert.Equal(t, "Hello", got["subject"])
		assert.Equal(t, "<p>Hi</p>", got["htmlContent"])
		to := got["to"].([]any)[0].(map[string]any)
		assert.Equal(t, "priya@example.com", to["email"])
		sender := got["sender"].(map[string]any)
		assert.Equal(t, "maya@assistant.example.com", sender["email"])
	})

	t.Run("unconfigured mailer is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		m := brevo.NewMailer("")
		err := m.Send(context.Background(), "priya@example.com", "s", "b")
		assert.Equal(t, maya.EUNAVAILABLE, maya.ErrorCode(err))
	})

	t.Run("non-201 response is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid sender"}`))
		}))
		defer srv.Close()

		m := brevo.NewMailer("test-key", brevo.WithBaseURL(srv.URL))
		err := m.Send(context.Background(), "priya@example.com", "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sender")
	})

	t.Run("missing recipient is EINVALID", func(t *testing.T) {
		t.Parallel()

		m := brevo.NewMailer("test-key")
		err := m.Send(context.Background(), "", "s", "b")
		assert.Equal(t, maya.EINVALID, maya.ErrorCode(err))
	})
}

func TestMailer_SendOTP(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := brevo.NewMailer("test-key", brevo.WithBaseURL(srv.URL))
	require.NoError(t, m.SendOTP(context.Background(), "priya@example.com", "123456"))

	assert.Contains(t, got["htmlContent"], "123456")
	assert.Contains(t, got["htmlContent"], "5 minutes")
}

func TestMailer_SendWelcome(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := brevo.NewMailer("test-key", brevo.WithBaseURL(srv.URL))
	require.NoError(t, m.SendWelcome(context.Background(), "priya@example.com"))

	assert.Equal(t, "Welcome to Maya", got["subject"])
}
