package model

import "encoding/json"

type Project struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Slug                string   `json:"slug"`
	Category            string   `json:"category"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailed_description,omitempty"`
	Image               string   `json:"image,omitempty"`
	ImageURL            string   `json:"image_url,omitempty"`
	Technologies        []string `json:"technologies"`
	Year                int      `json:"year,omitempty"`
	ClientName          string   `json:"client_name,omitempty"`
	ProjectURL          string   `json:"project_url,omitempty"`
	GithubURL           string   `json:"github_url,omitempty"`
	IsFeatured          bool     `json:"is_featured"`
	CreatedAt           string   `json:"created_at,omitempty"`
}

type ProjectCategory struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Testimonial struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Company      string `json:"company"`
	Text         string `json:"text"`
	Rating       int    `json:"rating"`
	ImageURL     string `json:"image_url,omitempty"`
	Project      *int   `json:"project,omitempty"`
	ProjectTitle string `json:"project_title,omitempty"`
	IsFeatured   bool   `json:"is_featured"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type Service struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	Features         []string `json:"features"`
	PriceRange       string   `json:"price_range,omitempty"`
	IsActive         bool     `json:"is_active"`
	Order            int      `json:"order"`
}

type BlogPost struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Excerpt          string   `json:"excerpt"`
	Content          string   `json:"content,omitempty"`
	FeaturedImageURL string   `json:"featured_image_url,omitempty"`
	Tags             []string `json:"tags"`
	IsFeatured       bool     `json:"is_featured"`
	ReadTime         int      `json:"read_time,omitempty"`
	PublishedAt      string   `json:"published_at,omitempty"`
}

type HelpArticle struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Category     string `json:"category"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content,omitempty"`
	IsFeatured   bool   `json:"is_featured"`
	ViewCount    int    `json:"view_count"`
	HelpfulVotes int    `json:"helpful_votes"`
}

type CaseStudy struct {
	ID               int             `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	ClientName       string          `json:"client_name"`
	Industry         string          `json:"industry"`
	Challenge        string          `json:"challenge,omitempty"`
	Solution         string          `json:"solution,omitempty"`
	Results          string          `json:"results,omitempty"`
	FeaturedImageURL string          `json:"featured_image_url,omitempty"`
	TechnologiesUsed []string        `json:"technologies_used"`
	ProjectDuration  string          `json:"project_duration"`
	ProjectURL       string          `json:"project_url,omitempty"`
	IsFeatured       bool            `json:"is_featured"`
	Metrics          json.RawMessage `json:"metrics,omitempty"`
}

type Stats struct {
	TotalProjects        int           `json:"total_projects"`
	TotalClients         int           `json:"total_clients"`
	YearsExperience      int           `json:"years_experience"`
	ClientSatisfaction   float64       `json:"client_satisfaction"`
	TechnologiesUsed     []string      `json:"technologies_used"`
	RecentProjects       []Project     `json:"recent_projects"`
	FeaturedTestimonials []Testimonial `json:"featured_testimonials"`
}

// SearchResults is the grouped body of GET /search/.
type SearchResults struct {
	Query   string `json:"query"`
	Results struct {
		Projects  []Project  `json:"projects"`
		BlogPosts []BlogPost `json:"blog_posts"`
		Services  []Service  `json:"services"`
	} `json:"results"`
	TotalResults int `json:"total_results"`
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type MeetingSummary struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Company       string `json:"company,omitempty"`
	MeetingType   string `json:"meeting_type"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at,omitempty"`
}
