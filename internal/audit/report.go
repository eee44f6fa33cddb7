// Package audit implements the SEO audit pipeline: it validates a target URL,
// renders it in a headless browser, extracts facts from the DOM, probes the
// origin's well-known resources, evaluates a fixed battery of checks, and
// aggregates the verdicts into a scored report.
package audit

import "time"

// Status is the verdict of one check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// CheckCount is the fixed number of checks in every report.
const CheckCount = 12

// TitleCheck covers the page title length heuristic.
type TitleCheck struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Length  int    `json:"length"`
	Value   string `json:"value"`
}

// DescriptionCheck covers the meta description length heuristic.
type DescriptionCheck struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Length  int    `json:"length"`
	Value   string `json:"value"`
}

// HeadingsCheck covers H1 usage and overall heading depth.
type HeadingsCheck struct {
	Status     Status `json:"status"`
	Message    string `json:"message"`
	H1Count    int    `json:"h1Count"`
	TotalCount int    `json:"totalCount"`
}

// ImagesCheck covers alt-text coverage across the page's images.
type ImagesCheck struct {
	Status     Status   `json:"status"`
	Message    string   `json:"message"`
	Total      int      `json:"total"`
	WithAlt    int      `json:"withAlt"`
	MissingAlt []string `json:"missingAlt"`
}

// MobileCheck covers the viewport meta tag.
type MobileCheck struct {
	Status      Status `json:"status"`
	Message     string `json:"message"`
	HasViewport bool   `json:"hasViewport"`
	Content     string `json:"content"`
}

// SpeedCheck covers load time, with its own 0-100 sub-score.
type SpeedCheck struct {
	Status     Status `json:"status"`
	Message    string `json:"message"`
	LoadTimeMs int64  `json:"loadTimeMs"`
	Score      int    `json:"score"`
}

// SSLCheck covers HTTPS usage and the primary navigation status.
type SSLCheck struct {
	Status     Status `json:"status"`
	Message    string `json:"message"`
	HTTPS      bool   `json:"https"`
	StatusCode int    `json:"statusCode"`
}

// InternalLinksCheck covers same-host link coverage.
type InternalLinksCheck struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ExternalLinksCheck covers outbound links and their nofollow ratio.
type ExternalLinksCheck struct {
	Status        Status `json:"status"`
	Message       string `json:"message"`
	Count         int    `json:"count"`
	NofollowCount int    `json:"nofollowCount"`
}

// SchemaCheck covers JSON-LD structured data presence.
type SchemaCheck struct {
	Status  Status   `json:"status"`
	Message string   `json:"message"`
	Types   []string `json:"types"`
}

// RobotsCheck covers robots.txt presence.
type RobotsCheck struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Exists  bool   `json:"exists"`
}

// SitemapCheck covers sitemap.xml presence.
type SitemapCheck struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Exists  bool   `json:"exists"`
}

// Checks is the fixed enumeration of the twelve named checks. Field order is
// the canonical check order used for tallying and recommendations.
type Checks struct {
	Title         TitleCheck         `json:"title"`
	Description   DescriptionCheck   `json:"description"`
	Headings      HeadingsCheck      `json:"headings"`
	Images        ImagesCheck        `json:"images"`
	Mobile        MobileCheck        `json:"mobile"`
	Speed         SpeedCheck         `json:"speed"`
	SSL           SSLCheck           `json:"ssl"`
	InternalLinks InternalLinksCheck `json:"internalLinks"`
	ExternalLinks ExternalLinksCheck `json:"externalLinks"`
	Schema        SchemaCheck        `json:"schema"`
	Robots        RobotsCheck        `json:"robots"`
	Sitemap       SitemapCheck       `json:"sitemap"`
}

// statuses returns every check's status in canonical order.
func (c *Checks) statuses() [CheckCount]Status {
	return [CheckCount]Status{
		c.Title.Status,
		c.Description.Status,
		c.Headings.Status,
		c.Images.Status,
		c.Mobile.Status,
		c.Speed.Status,
		c.SSL.Status,
		c.InternalLinks.Status,
		c.ExternalLinks.Status,
		c.Schema.Status,
		c.Robots.Status,
		c.Sitemap.Status,
	}
}

// IssueTally counts checks by verdict. The three counts always sum to
// CheckCount.
type IssueTally struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Passed   int `json:"passed"`
}

// Report is the externally visible artifact of one audit.
type Report struct {
	URL             string     `json:"url"`
	OverallScore    int        `json:"overallScore"`
	Issues          IssueTally `json:"issues"`
	Checks          Checks     `json:"checks"`
	Recommendations []string   `json:"recommendations"`
	GeneratedAt     time.Time  `json:"generatedAt"`
}
