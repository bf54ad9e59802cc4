package merge_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/merge"
)

func TestReadRows(t *testing.T) {
	t.Parallel()

	rows, err := merge.ReadRows(strings.NewReader("email,name\na@x.com,Ann\nb@x.com,Bob\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, []merge.Field{
		{Name: "email", Value: "a@x.com"},
		{Name: "name", Value: "Ann"},
	}, rows[0].Fields())

	name, _ := rows[1].Get("name")
	require.Equal(t, "Bob", name)
}

func TestReadRows_ByteOrderMark(t *testing.T) {
	t.Parallel()

	rows, err := merge.ReadRows(strings.NewReader("\ufeffemail,name\na@x.com,Ann\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	email, ok := rows[0].Get("email")
	require.True(t, ok, "BOM must not become part of the first column name")
	require.Equal(t, "a@x.com", email)
}

func TestReadRows_ShortAndLongRecords(t *testing.T) {
	t.Parallel()

	rows, err := merge.ReadRows(strings.NewReader("name,email\nAnn\nBob,b@x.com,extra\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, ok := rows[0].Get("email")
	require.False(t, ok)
	require.Equal(t, 2, rows[1].Len())
}

func TestReadRows_QuotedValues(t *testing.T) {
	t.Parallel()

	rows, err := merge.ReadRows(strings.NewReader("email,note\na@x.com,\"line one\nline two, with comma\"\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	note, _ := rows[0].Get("note")
	require.Equal(t, "line one\nline two, with comma", note)
}

func TestReadRows_Empty(t *testing.T) {
	t.Parallel()

	rows, err := merge.ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = merge.ReadRows(strings.NewReader("email,name\n"))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestReadRows_DuplicateColumn(t *testing.T) {
	t.Parallel()

	_, err := merge.ReadRows(strings.NewReader("email,name,email\na,b,c\n"))
	require.ErrorIs(t, err, merge.ErrDuplicateColumn)
}

func TestReadRows_Malformed(t *testing.T) {
	t.Parallel()

	_, err := merge.ReadRows(strings.NewReader("email,name\n\"a@x.com,Ann\n"))
	require.ErrorIs(t, err, merge.ErrReadRows)
}

func TestReadRowsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("email\na@x.com\n"), 0o600))

	rows, err := merge.ReadRowsFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = merge.ReadRowsFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, merge.ErrReadRows)
}
