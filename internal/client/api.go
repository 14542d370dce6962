package client

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

// ListIdeas returns the caller's ideas.
func (c *Client) ListIdeas(ctx context.Context) ([]galaxy.Idea, error) {
	var out []galaxy.Idea
	if err := c.do(ctx, http.MethodGet, "/ideas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIdea creates an idea and returns it as stored.
func (c *Client) CreateIdea(ctx context.Context, draft galaxy.IdeaDraft) (galaxy.Idea, error) {
	var out galaxy.Idea
	err := c.do(ctx, http.MethodPost, "/ideas", draft, &out)
	return out, err
}

// UpdateIdea applies a partial update and returns the stored idea.
func (c *Client) UpdateIdea(ctx context.Context, id string, patch galaxy.IdeaPatch) (galaxy.Idea, error) {
	var out galaxy.Idea
	err := c.do(ctx, http.MethodPut, "/ideas/"+escape(id), patch, &out)
	return out, err
}

// DeleteIdea removes an idea. The server cascades its constellations.
func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ideas/"+escape(id), nil, nil)
}

// ListConstellations returns the caller's constellations.
func (c *Client) ListConstellations(ctx context.Context) ([]galaxy.Constellation, error) {
	var out []galaxy.Constellation
	if err := c.do(ctx, http.MethodGet, "/constellations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type linkRequest struct {
	IdeaID1 string `json:"idea_id_1"`
	IdeaID2 string `json:"idea_id_2"`
}

// CreateConstellation links two ideas.
func (c *Client) CreateConstellation(ctx context.Context, id1, id2 string) (galaxy.Constellation, error) {
	var out galaxy.Constellation
	err := c.do(ctx, http.MethodPost, "/constellations", linkRequest{IdeaID1: id1, IdeaID2: id2}, &out)
	return out, err
}

// DeleteConstellation removes a constellation.
func (c *Client) DeleteConstellation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/constellations/"+escape(id), nil, nil)
}

// LoadAll fetches ideas and constellations concurrently.
func (c *Client) LoadAll(ctx context.Context) ([]galaxy.Idea, []galaxy.Constellation, error) {
	var (
		ideas []galaxy.Idea
		links []galaxy.Constellation
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ideas, err = c.ListIdeas(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = c.ListConstellations(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ideas, links, nil
}

// PublicProfile returns another user's shared galaxy.
func (c *Client) PublicProfile(ctx context.Context, userID string) (galaxy.Profile, error) {
	var out galaxy.Profile
	err := c.do(ctx, http.MethodGet, "/public/profile/"+escape(userID), nil, &out)
	return out, err
}

// Related returns ideas similar to one of the caller's ideas.
func (c *Client) Related(ctx context.Context, ideaID string) ([]galaxy.Related, error) {
	var out []galaxy.Related
	err := c.do(ctx, http.MethodGet, "/ideas/"+escape(ideaID)+"/related", nil, &out)
	return out, err
}

// Discover returns other users' public ideas, newest first.
func (c *Client) Discover(ctx context.Context) ([]galaxy.Related, error) {
	var out []galaxy.Related
	err := c.do(ctx, http.MethodGet, "/discover", nil, &out)
	return out, err
}
