package client

import "context"

type StatsAPI struct{ c *Client }

func (a *StatsAPI) GetStats(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/stats/", detailShape)
}

type SearchAPI struct{ c *Client }

// Search queries projects, blog posts and services at once. The backend
// rejects queries shorter than 3 characters with a 400.
func (a *SearchAPI) Search(ctx context.Context, query string) (*Result, error) {
	return a.c.get(ctx, "/search/?"+Params{{Key: "q", Value: query}}.Encode(), detailShape)
}

type HealthAPI struct{ c *Client }

func (a *HealthAPI) Check(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/health/", detailShape)
}
