package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

const ideaColumns = `id, user_id, title, description, status, x, y, brightness, created_at, updated_at`

const linkColumns = `id, user_id, idea_id_1, idea_id_2, created_at`

// UserStore is one user's galaxy. It implements the scene store's backend.
type UserStore struct {
	s      *Store
	userID string
}

// UserID returns the owner of this galaxy.
func (u *UserStore) UserID() string { return u.userID }

// ListIdeas returns the user's ideas in creation order.
func (u *UserStore) ListIdeas(ctx context.Context) ([]galaxy.Idea, error) {
	q := `SELECT ` + ideaColumns + ` FROM ideas WHERE user_id = ? ORDER BY rowid`
	return u.s.queryIdeas(ctx, q, u.userID)
}

// Idea returns one of the user's ideas.
func (u *UserStore) Idea(ctx context.Context, id string) (galaxy.Idea, error) {
	return getIdea(ctx, u.s.db, u.userID, id)
}

// CreateIdea stores a new idea. A draft without a position is centred and an
// empty status means spark.
func (u *UserStore) CreateIdea(ctx context.Context, draft galaxy.IdeaDraft) (galaxy.Idea, error) {
	if err := galaxy.ValidateDraft(draft); err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: create idea: %w", err)
	}
	status, err := galaxy.ParseStatus(string(draft.Status))
	if err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: create idea: %w", err)
	}
	pos := geom.Point{X: 0.5, Y: 0.5}
	if draft.Position != nil {
		pos = *draft.Position
	}
	now := u.s.now()
	idea := galaxy.Idea{
		ID:          uuid.NewString(),
		UserID:      u.userID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      status,
		Position:    pos,
		Brightness:  galaxy.BrightnessFor(status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	const q = `INSERT INTO ideas (` + ideaColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = u.s.db.ExecContext(ctx, q,
		idea.ID, idea.UserID, idea.Title, idea.Description, string(idea.Status),
		idea.Position.X, idea.Position.Y, idea.Brightness,
		formatTime(idea.CreatedAt), formatTime(idea.UpdatedAt))
	if err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: create idea: %w", err)
	}
	return idea, nil
}

// UpdateIdea applies patch to the idea and returns the stored result.
func (u *UserStore) UpdateIdea(ctx context.Context, id string, patch galaxy.IdeaPatch) (galaxy.Idea, error) {
	if err := galaxy.ValidatePatch(patch); err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: update idea %q: %w", id, err)
	}

	tx, err := u.s.db.BeginTx(ctx, nil)
	if err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: begin tx for idea %q: %w", id, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	idea, err := getIdea(ctx, tx, u.userID, id)
	if err != nil {
		return galaxy.Idea{}, err
	}
	idea = patch.Apply(idea)
	idea.UpdatedAt = u.s.now()

	const q = `UPDATE ideas SET title = ?, description = ?, status = ?, x = ?, y = ?,
		brightness = ?, updated_at = ? WHERE id = ? AND user_id = ?`
	_, err = tx.ExecContext(ctx, q,
		idea.Title, idea.Description, string(idea.Status), idea.Position.X, idea.Position.Y,
		idea.Brightness, formatTime(idea.UpdatedAt), id, u.userID)
	if err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: update idea %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: commit idea %q: %w", id, err)
	}
	return idea, nil
}

// DeleteIdea removes the idea and every constellation touching it in one
// transaction.
func (u *UserStore) DeleteIdea(ctx context.Context, id string) error {
	tx, err := u.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: begin tx for delete %q: %w", id, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx, `DELETE FROM ideas WHERE id = ? AND user_id = ?`, id, u.userID)
	if err != nil {
		return fmt.Errorf("sqlstore: delete idea %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("sqlstore: delete idea rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("sqlstore: idea %q: %w", id, galaxy.ErrNotFound)
	}

	const q = `DELETE FROM constellations WHERE user_id = ? AND (idea_id_1 = ? OR idea_id_2 = ?)`
	if _, err := tx.ExecContext(ctx, q, u.userID, id, id); err != nil {
		return fmt.Errorf("sqlstore: delete links of %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: commit delete %q: %w", id, err)
	}
	return nil
}

// ListConstellations returns the user's constellations in creation order.
func (u *UserStore) ListConstellations(ctx context.Context) ([]galaxy.Constellation, error) {
	q := `SELECT ` + linkColumns + ` FROM constellations WHERE user_id = ? ORDER BY rowid`
	return u.s.queryLinks(ctx, q, u.userID)
}

// CreateConstellation links two of the user's ideas. Both must exist, differ,
// and not already be linked in either order.
func (u *UserStore) CreateConstellation(ctx context.Context, id1, id2 string) (galaxy.Constellation, error) {
	if id1 == id2 {
		return galaxy.Constellation{}, fmt.Errorf("sqlstore: link %q: %w", id1, galaxy.ErrSelfLink)
	}

	tx, err := u.s.db.BeginTx(ctx, nil)
	if err != nil {
		return galaxy.Constellation{}, fmt.Errorf("sqlstore: begin tx for link: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, id := range []string{id1, id2} {
		if _, err := getIdea(ctx, tx, u.userID, id); err != nil {
			return galaxy.Constellation{}, err
		}
	}

	pair := galaxy.MakePair(id1, id2)
	var n int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM constellations WHERE user_id = ? AND lo_id = ? AND hi_id = ?`,
		u.userID, pair.Lo, pair.Hi).Scan(&n)
	if err != nil {
		return galaxy.Constellation{}, fmt.Errorf("sqlstore: check link: %w", err)
	}
	if n > 0 {
		return galaxy.Constellation{}, fmt.Errorf("sqlstore: link %q-%q: %w", id1, id2, galaxy.ErrDuplicateLink)
	}

	c := galaxy.Constellation{
		ID:        uuid.NewString(),
		UserID:    u.userID,
		IdeaID1:   id1,
		IdeaID2:   id2,
		CreatedAt: u.s.now(),
	}
	const q = `INSERT INTO constellations (id, user_id, idea_id_1, idea_id_2, lo_id, hi_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, q, c.ID, c.UserID, c.IdeaID1, c.IdeaID2, pair.Lo, pair.Hi, formatTime(c.CreatedAt))
	if err != nil {
		return galaxy.Constellation{}, fmt.Errorf("sqlstore: create link: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return galaxy.Constellation{}, fmt.Errorf("sqlstore: commit link: %w", err)
	}
	return c, nil
}

// DeleteConstellation removes one of the user's constellations.
func (u *UserStore) DeleteConstellation(ctx context.Context, id string) error {
	res, err := u.s.db.ExecContext(ctx, `DELETE FROM constellations WHERE id = ? AND user_id = ?`, id, u.userID)
	if err != nil {
		return fmt.Errorf("sqlstore: delete link %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: delete link rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sqlstore: link %q: %w", id, galaxy.ErrNotFound)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getIdea(ctx context.Context, q queryer, userID, id string) (galaxy.Idea, error) {
	row := q.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ? AND user_id = ?`, id, userID)
	idea, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: idea %q: %w", id, galaxy.ErrNotFound)
	}
	if err != nil {
		return galaxy.Idea{}, fmt.Errorf("sqlstore: idea %q: %w", id, err)
	}
	return idea, nil
}

func scanIdea(row scanner, extra ...any) (galaxy.Idea, error) {
	var (
		idea             galaxy.Idea
		status           string
		created, updated string
	)
	dest := append([]any{
		&idea.ID, &idea.UserID, &idea.Title, &idea.Description, &status,
		&idea.Position.X, &idea.Position.Y, &idea.Brightness, &created, &updated,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return galaxy.Idea{}, err
	}
	idea.Status = galaxy.Status(status)
	var err error
	if idea.CreatedAt, err = parseTimestamp(created); err != nil {
		return galaxy.Idea{}, err
	}
	if idea.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return galaxy.Idea{}, err
	}
	return idea, nil
}

func (s *Store) queryIdeas(ctx context.Context, query string, args ...any) ([]galaxy.Idea, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query ideas: %w", err)
	}
	defer rows.Close()

	result := []galaxy.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: scan idea: %w", err)
		}
		result = append(result, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterate ideas: %w", err)
	}
	return result, nil
}

func (s *Store) queryLinks(ctx context.Context, query string, args ...any) ([]galaxy.Constellation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query links: %w", err)
	}
	defer rows.Close()

	result := []galaxy.Constellation{}
	for rows.Next() {
		var (
			c  galaxy.Constellation
			ts string
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.IdeaID1, &c.IdeaID2, &ts); err != nil {
			return nil, fmt.Errorf("sqlstore: scan link: %w", err)
		}
		if c.CreatedAt, err = parseTimestamp(ts); err != nil {
			return nil, fmt.Errorf("sqlstore: scan link: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterate links: %w", err)
	}
	return result, nil
}
