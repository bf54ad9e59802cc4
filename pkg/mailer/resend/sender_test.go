package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := resend.New(resend.Config{})
	require.ErrorIs(t, err, resend.ErrMissingAPIKey)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		require.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	t.Cleanup(srv.Close)

	s, err := resend.New(resend.Config{APIKey: "re_test"}, resend.WithBaseURL(srv.URL))
	require.NoError(t, err)

	receipt, err := s.Send(context.Background(), &mailer.Email{
		From:    "team@example.com",
		To:      []string{"ann@example.com"},
		Subject: "Hi Ann",
		Text:    "Hello",
		Attachments: []mailer.Attachment{
			{Filename: "a.txt", ContentType: "text/plain", Content: []byte("abc")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "resend", receipt.Provider)
	require.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", receipt.ID)

	require.Equal(t, "Hi Ann", got["subject"])
	require.Equal(t, []any{"ann@example.com"}, got["to"])
	require.Len(t, got["attachments"], 1)
}

func TestSender_Send_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"statusCode":429,"name":"rate_limit_exceeded","message":"Too many requests"}`))
	}))
	t.Cleanup(srv.Close)

	s, err := resend.New(resend.Config{APIKey: "re_test", BaseURL: srv.URL})
	require.NoError(t, err)

	receipt, err := s.Send(context.Background(), &mailer.Email{
		From:    "team@example.com",
		To:      []string{"ann@example.com"},
		Subject: "Hi",
		Text:    "Hello",
	})
	require.Nil(t, receipt)
	require.ErrorIs(t, err, mailer.ErrSendFailed)

	var pe *mailer.ProviderError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "resend", pe.Provider)
}

func TestSender_Send_NoRecipient(t *testing.T) {
	t.Parallel()

	s, err := resend.New(resend.Config{APIKey: "re_test"})
	require.NoError(t, err)

	_, err = s.Send(context.Background(), &mailer.Email{Subject: "Hi"})
	require.ErrorIs(t, err, mailer.ErrNoRecipient)
}
