package merge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/merge"
)

func TestTemplate_Render(t *testing.T) {
	t.Parallel()

	tmpl, err := merge.NewTemplate("Hi {name}", "Hello {name},\nWelcome.")
	require.NoError(t, err)

	subject, body, err := tmpl.Render(merge.RowFromMap(map[string]string{"name": "Ann", "email": "a@x.com"}))
	require.NoError(t, err)
	require.Equal(t, "Hi Ann", subject)
	require.Equal(t, "Hello Ann,\nWelcome.", body)
	require.Equal(t, []string{"name"}, tmpl.Fields())
}

func TestTemplate_RenderMissingField(t *testing.T) {
	t.Parallel()

	tmpl, err := merge.NewTemplate("Hi {name}", "Your code: {code}")
	require.NoError(t, err)

	_, _, err = tmpl.Render(merge.RowFromMap(map[string]string{"name": "Ann"}))
	require.ErrorIs(t, err, merge.ErrMissingField)
}

func TestNewTemplate_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := merge.NewTemplate("Hi {name", "body")
	require.ErrorIs(t, err, merge.ErrTemplateSyntax)
	require.Contains(t, err.Error(), "subject")

	_, err = merge.NewTemplate("Hi", "body }")
	require.ErrorIs(t, err, merge.ErrTemplateSyntax)
	require.Contains(t, err.Error(), "body")
}

func TestParseTemplate_SubjectPrecedence(t *testing.T) {
	t.Parallel()

	withFront := []byte("---\nSubject: Front {name}\n---\nHello {name}")
	plain := []byte("Hello {name}")
	row := merge.RowFromMap(map[string]string{"name": "Ann"})

	tests := []struct {
		name     string
		content  []byte
		subject  string
		fallback string
		want     string
	}{
		{name: "flag wins", content: withFront, subject: "Flag {name}", fallback: "Fallback", want: "Flag Ann"},
		{name: "frontmatter", content: withFront, fallback: "Fallback", want: "Front Ann"},
		{name: "fallback", content: plain, fallback: "Fallback {name}", want: "Fallback Ann"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := merge.ParseTemplate(tt.content, tt.subject, tt.fallback)
			require.NoError(t, err)

			subject, body, err := tmpl.Render(row)
			require.NoError(t, err)
			require.Equal(t, tt.want, subject)
			require.Equal(t, "Hello Ann", body)
		})
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Parallel()

	_, err := merge.ParseTemplate([]byte("Hello"), "", "  ")
	require.ErrorIs(t, err, merge.ErrNoSubject)

	_, err = merge.ParseTemplate([]byte("---\nSubject: [unclosed\n---\nHello"), "", "")
	require.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "body.md")
	require.NoError(t, os.WriteFile(path, []byte("Hello {name}"), 0o600))

	tmpl, err := merge.LoadTemplate(path, "Hi {name}", "")
	require.NoError(t, err)
	require.Equal(t, "Hi {name}", tmpl.Subject.String())

	_, err = merge.LoadTemplate(filepath.Join(dir, "missing.md"), "Hi", "")
	require.ErrorIs(t, err, os.ErrNotExist)
}
