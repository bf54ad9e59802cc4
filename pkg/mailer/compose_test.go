package mailer

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type part struct {
	contentType string
	disposition string
	body        string
}

// readParts flattens a composed message into its leaf parts, in order.
func readParts(t *testing.T, raw []byte) (*mail.Message, []part) {
	t.Helper()

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	var parts []part
	var walk func(contentType string, body io.Reader, disposition string)
	walk = func(contentType string, body io.Reader, disposition string) {
		mediaType, params, err := mime.ParseMediaType(contentType)
		require.NoError(t, err)
		if !strings.HasPrefix(mediaType, "multipart/") {
			data, err := io.ReadAll(body)
			require.NoError(t, err)
			parts = append(parts, part{contentType: mediaType, disposition: disposition, body: string(data)})
			return
		}
		mr := multipart.NewReader(body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				return
			}
			require.NoError(t, err)
			walk(p.Header.Get("Content-Type"), p, p.Header.Get("Content-Disposition"))
		}
	}
	walk(msg.Header.Get("Content-Type"), msg.Body, "")

	return msg, parts
}

func TestCompose_PlainOnly(t *testing.T) {
	t.Parallel()

	raw, err := Compose(&Email{
		To:      []string{"a@x.com"},
		From:    "Team <team@x.com>",
		Subject: "Hi Ann",
		Text:    "Hello Ann,\nWelcome.",
	}, ComposeOptions{Date: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), MessageID: "id-1@x.com"})
	require.NoError(t, err)

	msg, parts := readParts(t, raw)
	require.Equal(t, "a@x.com", msg.Header.Get("To"))
	require.Equal(t, "Hi Ann", msg.Header.Get("Subject"))
	require.Equal(t, "<id-1@x.com>", msg.Header.Get("Message-ID"))

	date, err := msg.Header.Date()
	require.NoError(t, err)
	require.True(t, date.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	require.Len(t, parts, 1)
	require.Equal(t, "text/plain", parts[0].contentType)
}

func TestCompose_AlternativeAndAttachments(t *testing.T) {
	t.Parallel()

	raw, err := Compose(&Email{
		To:      []string{"a@x.com"},
		Subject: "Report",
		Text:    "See attached.",
		HTML:    "<p>See attached.</p>",
		Attachments: []Attachment{
			{Filename: "Ann.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")},
			{Filename: "notes.bin", Content: []byte{0x00, 0x01}},
		},
	}, ComposeOptions{})
	require.NoError(t, err)

	msg, parts := readParts(t, raw)
	mediaType, _, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	require.Len(t, parts, 4)
	require.Equal(t, "text/plain", parts[0].contentType)
	require.Equal(t, "text/html", parts[1].contentType)
	require.Equal(t, "application/pdf", parts[2].contentType)
	require.Contains(t, parts[2].disposition, "Ann.pdf")
	require.Equal(t, "application/octet-stream", parts[3].contentType)
	require.Contains(t, parts[3].disposition, "notes.bin")
}

func TestCompose_HTMLOnly(t *testing.T) {
	t.Parallel()

	raw, err := Compose(&Email{To: []string{"a@x.com"}, Subject: "S", HTML: "<p>x</p>"}, ComposeOptions{})
	require.NoError(t, err)

	_, parts := readParts(t, raw)
	require.Len(t, parts, 1)
	require.Equal(t, "text/html", parts[0].contentType)
}

func TestCompose_SameInputSameParts(t *testing.T) {
	t.Parallel()

	email := &Email{
		To:          []string{"a@x.com"},
		Subject:     "S",
		Text:        "body",
		HTML:        "<p>body</p>",
		Headers:     map[string]string{"X-B": "2", "X-A": "1"},
		Attachments: []Attachment{{Filename: "a.txt", ContentType: "text/plain", Content: []byte("abc")}},
	}
	opts := ComposeOptions{Date: time.Unix(1700000000, 0).UTC(), MessageID: "fixed@x.com"}

	first, err := Compose(email, opts)
	require.NoError(t, err)
	second, err := Compose(email, opts)
	require.NoError(t, err)

	msg1, parts1 := readParts(t, first)
	msg2, parts2 := readParts(t, second)
	require.Equal(t, parts1, parts2)
	require.Equal(t, msg1.Header.Get("Date"), msg2.Header.Get("Date"))
	require.Equal(t, "1", msg1.Header.Get("X-A"))
	require.Equal(t, "2", msg1.Header.Get("X-B"))
}

func TestCompose_NonASCIIDisplayNames(t *testing.T) {
	t.Parallel()

	email := &Email{
		From:    "Café Team <team@x.com>",
		To:      []string{"Zoë Ålund <zoe@x.com>", "plain@x.com"},
		CC:      []string{`"Doe, John" <john@x.com>`},
		ReplyTo: "Søren <soren@x.com>",
		Subject: "Hi Zoë",
		Text:    "Hello",
	}
	to := slices.Clone(email.To)
	cc := slices.Clone(email.CC)

	raw, err := Compose(email, ComposeOptions{})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	from, err := msg.Header.AddressList("From")
	require.NoError(t, err)
	require.Equal(t, []*mail.Address{{Name: "Café Team", Address: "team@x.com"}}, from)

	gotTo, err := msg.Header.AddressList("To")
	require.NoError(t, err)
	require.Equal(t, []*mail.Address{
		{Name: "Zoë Ålund", Address: "zoe@x.com"},
		{Address: "plain@x.com"},
	}, gotTo)

	gotCC, err := msg.Header.AddressList("Cc")
	require.NoError(t, err)
	require.Equal(t, []*mail.Address{{Name: "Doe, John", Address: "john@x.com"}}, gotCC)

	replyTo, err := msg.Header.AddressList("Reply-To")
	require.NoError(t, err)
	require.Equal(t, "soren@x.com", replyTo[0].Address)

	require.Equal(t, to, email.To, "To must not be rewritten")
	require.Equal(t, cc, email.CC, "Cc must not be rewritten")
}

func TestCompose_InvalidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email *Email
	}{
		{name: "from", email: &Email{From: "not an address", To: []string{"a@x.com"}}},
		{name: "to", email: &Email{To: []string{"a@x.com", "nope"}}},
		{name: "bcc", email: &Email{To: []string{"a@x.com"}, BCC: []string{"@x.com"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := Compose(tt.email, ComposeOptions{})
			require.ErrorIs(t, err, ErrInvalidAddress)
			require.Nil(t, raw)
		})
	}
}

func TestCompose_NoRecipient(t *testing.T) {
	t.Parallel()

	raw, err := Compose(&Email{Subject: "S", Text: "x"}, ComposeOptions{})
	require.ErrorIs(t, err, ErrNoRecipient)
	require.Nil(t, raw)
}

func TestEncodeRaw_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := []byte("Subject: ünïcode?\r\n\r\nbody with +/ chars \xff")
	encoded := EncodeRaw(raw)

	require.NotContains(t, encoded, "+")
	require.NotContains(t, encoded, "/")

	decoded, err := DecodeRaw(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestNewMessageID(t *testing.T) {
	t.Parallel()

	require.True(t, strings.HasSuffix(NewMessageID("Team <team@example.com>"), "@example.com"))
	require.True(t, strings.HasSuffix(NewMessageID("not an address"), "@localhost"))
	require.NotEqual(t, NewMessageID("a@x.com"), NewMessageID("a@x.com"))
}
