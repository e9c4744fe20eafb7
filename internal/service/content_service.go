package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/metrics"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/sarif-mia/agency-website-sub000/internal/repository"
	"github.com/sarif-mia/agency-website-sub000/internal/sample"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("content not found")
	ErrUnknownResource = errors.New("unknown content resource")
)

type ContentServiceInterface interface {
	List(ctx context.Context, resource string, params client.Params) (*model.Page, error)
	ListBy(ctx context.Context, resource, value string) (*model.Page, error)
	Get(ctx context.Context, resource, slug string) (*model.Page, error)
}

type fetchFunc func(ctx context.Context) (*client.Result, error)

// listResource wires a list resource to its endpoint and its sample records.
type listResource struct {
	fetch        func(c *client.Client, ctx context.Context, p client.Params) (*client.Result, error)
	sample       string
	sampleField  string
	sampleValue  string
	forwardQuery bool
}

// filteredResource is a list narrowed by one path value, like help/category/{x}.
type filteredResource struct {
	fetch       func(c *client.Client, ctx context.Context, value string) (*client.Result, error)
	segment     string
	sampleField string
}

type detailResource struct {
	fetch func(c *client.Client, ctx context.Context, slug string) (*client.Result, error)
}

var listResources = map[string]listResource{
	"projects": {
		fetch:        func(c *client.Client, ctx context.Context, p client.Params) (*client.Result, error) { return c.Projects.GetAll(ctx, p) },
		sample:       "projects",
		forwardQuery: true,
	},
	"projects-featured": {
		fetch:       func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.Projects.GetFeatured(ctx) },
		sample:      "projects",
		sampleField: "is_featured",
		sampleValue: "true",
	},
	"project-categories": {
		fetch: func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.Projects.GetCategories(ctx) },
	},
	"testimonials": {
		fetch:  func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.Testimonials.GetAll(ctx) },
		sample: "testimonials",
	},
	"testimonials-featured": {
		fetch:       func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.Testimonials.GetFeatured(ctx) },
		sample:      "testimonials",
		sampleField: "is_featured",
		sampleValue: "true",
	},
	"services": {
		fetch:  func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.Services.GetAll(ctx) },
		sample: "services",
	},
	"blog": {
		fetch:        func(c *client.Client, ctx context.Context, p client.Params) (*client.Result, error) { return c.Blog.GetAll(ctx, p) },
		sample:       "blog",
		forwardQuery: true,
	},
	"help": {
		fetch:        func(c *client.Client, ctx context.Context, p client.Params) (*client.Result, error) { return c.Help.GetAll(ctx, p) },
		sample:       "help",
		forwardQuery: true,
	},
	"case-studies": {
		fetch:        func(c *client.Client, ctx context.Context, p client.Params) (*client.Result, error) { return c.CaseStudies.GetAll(ctx, p) },
		sample:       "case-studies",
		forwardQuery: true,
	},
	"case-studies-featured": {
		fetch:       func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.CaseStudies.GetFeatured(ctx) },
		sample:      "case-studies",
		sampleField: "is_featured",
		sampleValue: "true",
	},
	"stats": {
		fetch: func(c *client.Client, ctx context.Context, _ client.Params) (*client.Result, error) { return c.Stats.GetStats(ctx) },
	},
}

var filteredResources = map[string]filteredResource{
	"help": {
		fetch:       func(c *client.Client, ctx context.Context, v string) (*client.Result, error) { return c.Help.GetByCategory(ctx, v) },
		segment:     "category",
		sampleField: "category",
	},
	"case-studies": {
		fetch:       func(c *client.Client, ctx context.Context, v string) (*client.Result, error) { return c.CaseStudies.GetByIndustry(ctx, v) },
		segment:     "industry",
		sampleField: "industry",
	},
}

var detailResources = map[string]detailResource{
	"projects":     {fetch: func(c *client.Client, ctx context.Context, s string) (*client.Result, error) { return c.Projects.GetBySlug(ctx, s) }},
	"services":     {fetch: func(c *client.Client, ctx context.Context, s string) (*client.Result, error) { return c.Services.GetBySlug(ctx, s) }},
	"blog":         {fetch: func(c *client.Client, ctx context.Context, s string) (*client.Result, error) { return c.Blog.GetBySlug(ctx, s) }},
	"help":         {fetch: func(c *client.Client, ctx context.Context, s string) (*client.Result, error) { return c.Help.GetBySlug(ctx, s) }},
	"case-studies": {fetch: func(c *client.Client, ctx context.Context, s string) (*client.Result, error) { return c.CaseStudies.GetBySlug(ctx, s) }},
}

// ListResources returns the names accepted by ContentService.List.
func ListResources() []string {
	names := make([]string, 0, len(listResources))
	for name := range listResources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContentService serves site content with a fixed fallback order:
// live backend, last snapshot, bundled sample records, empty page.
type ContentService struct {
	Client    *client.Client
	Snapshots repository.SnapshotRepository
	Metrics   *metrics.ClientMetrics
	logger    *zap.SugaredLogger
}

// NewContentService creates a content service. A nil repository disables snapshots.
func NewContentService(c *client.Client, snapshots repository.SnapshotRepository, m *metrics.ClientMetrics) *ContentService {
	if snapshots == nil {
		snapshots = repository.NewNoopRepository()
	}
	return &ContentService{
		Client:    c,
		Snapshots: snapshots,
		Metrics:   m,
		logger:    config.GetLogger(),
	}
}

// List returns a content list. params are forwarded to resources that accept a query.
func (s *ContentService) List(ctx context.Context, resource string, params client.Params) (*model.Page, error) {
	r, ok := listResources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	if !r.forwardQuery {
		params = nil
	}
	key := resource
	if len(params) > 0 {
		key += "?" + params.Encode()
	}

	fetch := func(ctx context.Context) (*client.Result, error) { return r.fetch(s.Client, ctx, params) }
	fallback := func() []json.RawMessage {
		switch {
		case r.sample == "":
			return nil
		case r.sampleField != "":
			return sample.Filter(r.sample, r.sampleField, r.sampleValue)
		default:
			items, _ := sample.List(r.sample)
			return items
		}
	}
	return s.resolve(ctx, resource, key, fetch, fallback, false)
}

// ListBy returns a list narrowed by category (help) or industry (case-studies).
func (s *ContentService) ListBy(ctx context.Context, resource, value string) (*model.Page, error) {
	r, ok := filteredResources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	key := resource + "/" + r.segment + "/" + value

	fetch := func(ctx context.Context) (*client.Result, error) { return r.fetch(s.Client, ctx, value) }
	fallback := func() []json.RawMessage { return sample.Filter(resource, r.sampleField, value) }
	return s.resolve(ctx, resource, key, fetch, fallback, false)
}

// Get returns a single record as a one-item page, or ErrNotFound.
func (s *ContentService) Get(ctx context.Context, resource, slug string) (*model.Page, error) {
	r, ok := detailResources[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	key := resource + "/" + slug

	fetch := func(ctx context.Context) (*client.Result, error) { return r.fetch(s.Client, ctx, slug) }
	fallback := func() []json.RawMessage {
		if item, ok := sample.Find(resource, slug); ok {
			return []json.RawMessage{item}
		}
		return nil
	}
	return s.resolve(ctx, resource, key, fetch, fallback, true)
}

func (s *ContentService) resolve(ctx context.Context, resource, key string, fetch fetchFunc, fallback func() []json.RawMessage, detail bool) (*model.Page, error) {
	res, err := fetch(ctx)
	if err != nil && isContextErr(err) {
		return nil, err
	}

	message := ""
	switch {
	case err != nil:
		s.logger.Warnw("Content fetch failed", "resource", resource, "key", key, "error", err)
		if httpErr, ok := client.AsHTTPError(err); ok {
			message = httpErr.Message
		}
	case res.Degraded():
		message = model.DemoModeMessage
	default:
		env, nerr := res.Envelope()
		if nerr != nil {
			s.logger.Warnw("Content envelope could not be normalised", "resource", resource, "error", nerr)
			break
		}
		if !env.Empty() {
			s.Snapshots.Save(ctx, key, env)
			return s.page(resource, env.Results, model.SourceLive, env.Message), nil
		}
	}

	if env, lerr := s.Snapshots.Load(ctx, key); lerr == nil && !env.Empty() {
		return s.page(resource, env.Results, model.SourceSnapshot, message), nil
	} else if lerr != nil && !errors.Is(lerr, repository.ErrSnapshotNotFound) {
		s.logger.Warnw("Snapshot lookup failed", "key", key, "error", lerr)
	}

	if items := fallback(); len(items) > 0 {
		return s.page(resource, items, model.SourceSample, message), nil
	}

	if detail {
		s.Metrics.IncContentSource(resource, string(model.SourceEmpty))
		return nil, ErrNotFound
	}
	return s.page(resource, []json.RawMessage{}, model.SourceEmpty, message), nil
}

func (s *ContentService) page(resource string, items []json.RawMessage, source model.Source, message string) *model.Page {
	s.Metrics.IncContentSource(resource, string(source))
	if source != model.SourceLive {
		s.logger.Infow("Serving fallback content", "resource", resource, "source", source)
	}
	return &model.Page{
		Resource: resource,
		Items:    items,
		Source:   source,
		Message:  message,
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
