package client

import (
	"context"
	"net/url"
)

type ProjectsAPI struct{ c *Client }

// GetAll lists projects, optionally filtered (category, year, is_featured, search, ordering, page).
func (a *ProjectsAPI) GetAll(ctx context.Context, params Params) (*Result, error) {
	return a.c.get(ctx, "/projects/?"+params.Encode(), listShape)
}

func (a *ProjectsAPI) GetFeatured(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/projects/featured/", listShape)
}

func (a *ProjectsAPI) GetBySlug(ctx context.Context, slug string) (*Result, error) {
	return a.c.get(ctx, "/projects/"+url.PathEscape(slug)+"/", detailShape)
}

// GetCategories returns {categories: [...], total}; the envelope holds the categories.
func (a *ProjectsAPI) GetCategories(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/projects/categories/", categoriesShape)
}

type TestimonialsAPI struct{ c *Client }

func (a *TestimonialsAPI) GetAll(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/testimonials/", listShape)
}

func (a *TestimonialsAPI) GetFeatured(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/testimonials/featured/", listShape)
}

type ServicesAPI struct{ c *Client }

func (a *ServicesAPI) GetAll(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/services/", listShape)
}

func (a *ServicesAPI) GetBySlug(ctx context.Context, slug string) (*Result, error) {
	return a.c.get(ctx, "/services/"+url.PathEscape(slug)+"/", detailShape)
}

type BlogAPI struct{ c *Client }

func (a *BlogAPI) GetAll(ctx context.Context, params Params) (*Result, error) {
	return a.c.get(ctx, "/blog/?"+params.Encode(), listShape)
}

func (a *BlogAPI) GetBySlug(ctx context.Context, slug string) (*Result, error) {
	return a.c.get(ctx, "/blog/"+url.PathEscape(slug)+"/", detailShape)
}

type HelpAPI struct{ c *Client }

func (a *HelpAPI) GetAll(ctx context.Context, params Params) (*Result, error) {
	return a.c.get(ctx, "/help/?"+params.Encode(), listShape)
}

func (a *HelpAPI) GetBySlug(ctx context.Context, slug string) (*Result, error) {
	return a.c.get(ctx, "/help/"+url.PathEscape(slug)+"/", detailShape)
}

func (a *HelpAPI) GetByCategory(ctx context.Context, category string) (*Result, error) {
	return a.c.get(ctx, "/help/category/"+url.PathEscape(category)+"/", listShape)
}

type CaseStudiesAPI struct{ c *Client }

func (a *CaseStudiesAPI) GetAll(ctx context.Context, params Params) (*Result, error) {
	return a.c.get(ctx, "/case-studies/?"+params.Encode(), listShape)
}

func (a *CaseStudiesAPI) GetBySlug(ctx context.Context, slug string) (*Result, error) {
	return a.c.get(ctx, "/case-studies/"+url.PathEscape(slug)+"/", detailShape)
}

func (a *CaseStudiesAPI) GetFeatured(ctx context.Context) (*Result, error) {
	return a.c.get(ctx, "/case-studies/featured/", listShape)
}

func (a *CaseStudiesAPI) GetByIndustry(ctx context.Context, industry string) (*Result, error) {
	return a.c.get(ctx, "/case-studies/industry/"+url.PathEscape(industry)+"/", listShape)
}
