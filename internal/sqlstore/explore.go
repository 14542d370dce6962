package sqlstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

const (
	relatedLimit  = 10
	discoverLimit = 20
	minTokenLen   = 3
)

// PublicProfile returns a user's shared galaxy: name, refined and completed
// ideas, and every constellation. Constellations may reference ideas that
// are not shared.
func (s *Store) PublicProfile(ctx context.Context, userID string) (galaxy.Profile, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return galaxy.Profile{}, err
	}
	q := `SELECT ` + ideaColumns + ` FROM ideas WHERE user_id = ? AND status IN (?, ?) ORDER BY rowid`
	ideas, err := s.queryIdeas(ctx, q, userID, string(galaxy.StatusRefined), string(galaxy.StatusCompleted))
	if err != nil {
		return galaxy.Profile{}, err
	}
	links, err := s.queryLinks(ctx, `SELECT `+linkColumns+` FROM constellations WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return galaxy.Profile{}, err
	}
	return galaxy.Profile{UserName: u.Name, Ideas: ideas, Constellations: links}, nil
}

// PublicProfile returns the shared galaxy of another user.
func (u *UserStore) PublicProfile(ctx context.Context, userID string) (galaxy.Profile, error) {
	return u.s.PublicProfile(ctx, userID)
}

type candidate struct {
	idea     galaxy.Idea
	userName string
}

// candidates returns ideas visible to userID: all of their own plus every
// other user's public ones, newest first.
func (s *Store) candidates(ctx context.Context, userID string, othersOnly bool) ([]candidate, error) {
	q := `SELECT i.id, i.user_id, i.title, i.description, i.status, i.x, i.y, i.brightness,
			i.created_at, i.updated_at, u.name
		FROM ideas i JOIN users u ON u.id = i.user_id
		WHERE (i.user_id != ? AND i.status IN (?, ?))`
	if !othersOnly {
		q += ` OR i.user_id = ?`
	}
	q += ` ORDER BY i.created_at DESC, i.rowid DESC`

	args := []any{userID, string(galaxy.StatusRefined), string(galaxy.StatusCompleted)}
	if !othersOnly {
		args = append(args, userID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query candidates: %w", err)
	}
	defer rows.Close()

	var out []candidate
	for rows.Next() {
		var c candidate
		idea, err := scanIdea(rows, &c.userName)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: scan candidate: %w", err)
		}
		c.idea = idea
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterate candidates: %w", err)
	}
	return out, nil
}

// Related ranks ideas similar to one of the user's ideas by the Jaccard
// index of their title and description words. Only ideas the user may see
// are considered; zero scores are dropped and at most ten are returned.
func (u *UserStore) Related(ctx context.Context, ideaID string) ([]galaxy.Related, error) {
	src, err := u.Idea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	cands, err := u.s.candidates(ctx, u.userID, false)
	if err != nil {
		return nil, err
	}

	want := tokens(src.Title + " " + src.Description)
	out := []galaxy.Related{}
	for _, c := range cands {
		if c.idea.ID == src.ID {
			continue
		}
		sim := jaccard(want, tokens(c.idea.Title+" "+c.idea.Description))
		if sim <= 0 {
			continue
		}
		out = append(out, galaxy.Related{Idea: c.idea, UserName: c.userName, Similarity: sim})
	}
	// Candidates arrive newest first; a stable sort keeps that as tie-break.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > relatedLimit {
		out = out[:relatedLimit]
	}
	return out, nil
}

// Discover lists other users' public ideas, newest first.
func (u *UserStore) Discover(ctx context.Context) ([]galaxy.Related, error) {
	cands, err := u.s.candidates(ctx, u.userID, true)
	if err != nil {
		return nil, err
	}
	out := []galaxy.Related{}
	for _, c := range cands {
		if len(out) == discoverLimit {
			break
		}
		out = append(out, galaxy.Related{Idea: c.idea, UserName: c.userName})
	}
	return out, nil
}

// tokens returns the set of lower-cased words of at least three letters or
// digits in s.
func tokens(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(w)) >= minTokenLen {
			set[w] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
