package vault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	return New([]byte("0123456789abcdef"))
}

func TestNewCopiesSalt(t *testing.T) {
	salt := []byte("0123456789abcdef")
	v := New(salt)
	salt[0] = 'X'
	require.Equal(t, byte('0'), v.Salt[0])
	require.Empty(t, v.Entries)
	require.NotNil(t, v.Entries)
}

func TestAddAssignsIDs(t *testing.T) {
	v := newTestVault(t)

	e1, err := v.Add(Entry{Name: " email ", Username: "a@b.com", Password: "xyz", Tags: []string{"Work", "work", " "}})
	require.NoError(t, err)
	e2, err := v.Add(Entry{Name: "bank", ID: "forced-id"})
	require.NoError(t, err)

	require.NotEmpty(t, e1.ID)
	require.NotEqual(t, "forced-id", e2.ID)
	require.NotEqual(t, e1.ID, e2.ID)
	require.Equal(t, "email", e1.Name)
	require.Equal(t, []string{"work"}, e1.Tags)
	require.False(t, e1.Created.IsZero())
	require.Len(t, v.Entries, 2)

	_, err = v.Add(Entry{Name: "   "})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestLookup(t *testing.T) {
	v := newTestVault(t)
	e, err := v.Add(Entry{Name: "Email"})
	require.NoError(t, err)

	got, err := v.Lookup(e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)

	got, err = v.Lookup("email")
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)

	_, err = v.Lookup("nope")
	require.ErrorIs(t, err, ErrEntryNotFound)

	_, err = v.Add(Entry{Name: "EMAIL"})
	require.NoError(t, err)
	_, err = v.Lookup("email")
	require.ErrorIs(t, err, ErrAmbiguousName)
}

func TestUpdateKeepsIdentityAndHistory(t *testing.T) {
	v := newTestVault(t)
	e, err := v.Add(Entry{Name: "email", Password: "p0"})
	require.NoError(t, err)

	for _, pw := range []string{"p1", "p2", "p3"} {
		pw := pw
		_, err := v.Update(e.ID, 2, func(x *Entry) {
			x.Password = pw
			x.ID = "hijack"
		})
		require.NoError(t, err)
	}

	got := v.Find(e.ID)
	require.NotNil(t, got)
	require.Equal(t, "p3", got.Password)
	require.Equal(t, e.Created, got.Created)
	require.Len(t, got.History, 2)
	require.Equal(t, "p2", got.History[0].Password)
	require.Equal(t, "p1", got.History[1].Password)
	require.Nil(t, v.Find("hijack"))

	// non-password edits do not add history
	_, err = v.Update(e.ID, 2, func(x *Entry) { x.Notes = "n" })
	require.NoError(t, err)
	require.Len(t, v.Find(e.ID).History, 2)

	_, err = v.Update(e.ID, 2, func(x *Entry) { x.Name = "" })
	require.ErrorIs(t, err, ErrEmptyName)
	require.Equal(t, "email", v.Find(e.ID).Name)

	_, err = v.Update("missing", 2, func(*Entry) {})
	require.True(t, errors.Is(err, ErrEntryNotFound))
}

func TestRemoveAndSearch(t *testing.T) {
	v := newTestVault(t)
	a, _ := v.Add(Entry{Name: "email", Username: "me@example.com"})
	_, _ = v.Add(Entry{Name: "bank", URL: "https://bank.example"})
	_, _ = v.Add(Entry{Name: "forum", Tags: []string{"social"}})

	require.Len(t, v.Search(""), 3)
	require.Len(t, v.Search("EXAMPLE"), 2)
	require.Len(t, v.Search("social"), 1)
	require.Empty(t, v.Search("zzz"))

	require.True(t, v.Remove(a.ID))
	require.False(t, v.Remove(a.ID))
	require.Len(t, v.Entries, 2)
	require.Equal(t, "bank", v.Entries[0].Name)
}

func TestTagsAndFilterTag(t *testing.T) {
	v := newTestVault(t)
	gmail, _ := v.Add(Entry{Name: "gmail", Tags: []string{"Mail", "google"}})
	_, _ = v.Add(Entry{Name: "email", Tags: []string{"work"}})
	work, _ := v.Add(Entry{Name: "outlook", Tags: []string{"mail", "work"}})
	_, _ = v.Add(Entry{Name: "mailbox", Tags: []string{"mailing"}})
	_, _ = v.Add(Entry{Name: "untagged"})

	require.Equal(t, []TagCount{
		{Tag: "mail", Count: 2},
		{Tag: "work", Count: 2},
		{Tag: "google", Count: 1},
		{Tag: "mailing", Count: 1},
	}, v.Tags())

	// exact tag only: names and the "mailing" tag do not match
	got := v.FilterTag(" MAIL ")
	require.Len(t, got, 2)
	require.Equal(t, gmail.ID, got[0].ID)
	require.Equal(t, work.ID, got[1].ID)

	require.Empty(t, v.FilterTag("mai"))
	require.Empty(t, New(nil).Tags())
}
