package vault

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit bounds Entry.History when no limit is given
const DefaultHistoryLimit = 10

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrEmptyName     = errors.New("entry name is required")
	ErrAmbiguousName = errors.New("more than one entry has this name")
)

// Vault is the decrypted content of a container
type Vault struct {
	Entries  []Entry   `json:"entries"`
	Salt     []byte    `json:"salt"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// Entry is one stored credential
type Entry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	URL      string        `json:"url,omitempty"`
	Notes    string        `json:"notes,omitempty"`
	Tags     []string      `json:"tags,omitempty"`
	Created  time.Time     `json:"created"`
	Modified time.Time     `json:"modified"`
	History  []HistoryItem `json:"history,omitempty"`
}

// HistoryItem is a previous password and when it was replaced
type HistoryItem struct {
	Password string    `json:"password"`
	Changed  time.Time `json:"changed"`
}

// New creates an empty vault bound to salt. The salt is copied.
func New(salt []byte) *Vault {
	now := time.Now().UTC()
	return &Vault{
		Entries:  make([]Entry, 0),
		Salt:     append([]byte(nil), salt...),
		Created:  now,
		Modified: now,
	}
}

// Add appends a new entry, assigning its ID and timestamps.
// Returns the stored copy.
func (v *Vault) Add(e Entry) (Entry, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return Entry{}, ErrEmptyName
	}

	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.Created = now
	e.Modified = now
	e.History = nil
	e.Tags = normalizeTags(e.Tags)

	v.Entries = append(v.Entries, e)
	v.Modified = now
	return e, nil
}

// Find finds an entry by ID
func (v *Vault) Find(id string) *Entry {
	for i := range v.Entries {
		if v.Entries[i].ID == id {
			return &v.Entries[i]
		}
	}
	return nil
}

// Lookup resolves ref as an ID first, then as a case-insensitive name.
func (v *Vault) Lookup(ref string) (*Entry, error) {
	if e := v.Find(ref); e != nil {
		return e, nil
	}

	var found *Entry
	for i := range v.Entries {
		if strings.EqualFold(v.Entries[i].Name, ref) {
			if found != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousName, ref)
			}
			found = &v.Entries[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, ref)
	}
	return found, nil
}

// Update applies fn to a copy of the entry with the given ID and stores
// the result. The ID and creation time cannot be changed. When the
// password changes, the old one is pushed onto History, keeping at most
// historyLimit items (DefaultHistoryLimit if historyLimit <= 0).
func (v *Vault) Update(id string, historyLimit int, fn func(*Entry)) (Entry, error) {
	cur := v.Find(id)
	if cur == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	next := *cur
	next.Tags = append([]string(nil), cur.Tags...)
	next.History = append([]HistoryItem(nil), cur.History...)
	fn(&next)

	next.ID = cur.ID
	next.Created = cur.Created
	next.Name = strings.TrimSpace(next.Name)
	if next.Name == "" {
		return Entry{}, ErrEmptyName
	}
	next.Tags = normalizeTags(next.Tags)

	now := time.Now().UTC()
	if next.Password != cur.Password {
		next.History = append([]HistoryItem{{Password: cur.Password, Changed: now}}, next.History...)
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	if len(next.History) > historyLimit {
		next.History = next.History[:historyLimit]
	}
	next.Modified = now

	*cur = next
	v.Modified = now
	return next, nil
}

// Remove removes the entry with the given ID
func (v *Vault) Remove(id string) bool {
	for i := range v.Entries {
		if v.Entries[i].ID == id {
			v.Entries = append(v.Entries[:i], v.Entries[i+1:]...)
			v.Modified = time.Now().UTC()
			return true
		}
	}
	return false
}

// Search returns entries whose name, username, URL or tags contain query,
// case-insensitively, in vault order. An empty query matches everything.
func (v *Vault) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if q == "" || e.matches(q) {
			out = append(out, e)
		}
	}
	return out
}

// TagCount is a tag and the number of entries carrying it
type TagCount struct {
	Tag   string
	Count int
}

// Tags returns every tag in use, most used first; ties sort by name
func (v *Vault) Tags() []TagCount {
	counts := make(map[string]int)
	for _, e := range v.Entries {
		for _, t := range e.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// FilterTag returns entries carrying tag exactly (case-insensitive), in
// vault order
func (v *Vault) FilterTag(tag string) []Entry {
	want := strings.ToLower(strings.TrimSpace(tag))
	out := make([]Entry, 0)
	for _, e := range v.Entries {
		for _, t := range e.Tags {
			if t == want {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (e *Entry) matches(q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Username), q) ||
		strings.Contains(strings.ToLower(e.URL), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(t, q) {
			return true
		}
	}
	return false
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping order
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
