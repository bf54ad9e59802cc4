package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecipient_WithName(t *testing.T) {
	t.Parallel()

	result := Recipient("John Doe", "john@example.com")

	require.Equal(t, `"John Doe" <john@example.com>`, result)
}

func TestRecipient_WithoutName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "john@example.com", Recipient("", "john@example.com"))
	require.Equal(t, "john@example.com", Recipient("   ", "john@example.com"))
}

func TestRecipient_ParsesBack(t *testing.T) {
	t.Parallel()

	addr, err := ParseAddress(Recipient(`Doe, "JD" John`, "john@example.com"))
	require.NoError(t, err)
	require.Equal(t, "john@example.com", addr)
}

func TestParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare", input: "a@x.com", want: "a@x.com"},
		{name: "with name", input: "Ann <a@x.com>", want: "a@x.com"},
		{name: "surrounding spaces", input: "  a@x.com ", want: "a@x.com"},
		{name: "empty", input: "", wantErr: true},
		{name: "no at sign", input: "not-an-email", wantErr: true},
		{name: "two addresses", input: "a@x.com, b@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEmail_Size(t *testing.T) {
	t.Parallel()

	email := &Email{
		Attachments: []Attachment{
			{Filename: "a.txt", Content: []byte("abc")},
			{Filename: "b.txt", Content: []byte("defgh")},
		},
	}

	require.Equal(t, 8, email.Size())
	require.Zero(t, (&Email{}).Size())
}

func TestReceipt_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "gmail:18c1", (&Receipt{Provider: "gmail", ID: "18c1"}).String())
	require.Equal(t, "smtp", (&Receipt{Provider: "smtp"}).String())
}

func TestProviderError(t *testing.T) {
	t.Parallel()

	cause := errors.New("quota exceeded")
	err := error(NewProviderError("gmail", cause))

	require.Equal(t, "gmail: quota exceeded", err.Error())
	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, cause)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "gmail", pe.Provider)
}

func TestProviderError_NilCause(t *testing.T) {
	t.Parallel()

	err := NewProviderError("smtp", nil)

	require.Equal(t, "smtp: unknown error", err.Error())
	require.ErrorIs(t, err, ErrSendFailed)
}
