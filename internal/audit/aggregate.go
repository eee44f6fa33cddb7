package audit

import "math"

// Per-status contribution to the overall score. Every check weighs the same
// regardless of real-world SEO impact; this is a deliberate simplification
// kept for compatibility with existing scores.
var statusScore = map[Status]float64{
	StatusPass:    100,
	StatusWarning: 60,
	StatusFail:    0,
}

// recommendation holds the fixed remediation text for one check kind,
// paired with an accessor for that check's status. Internal and external
// link checks intentionally carry no recommendation text.
type recommendation struct {
	status func(*Checks) Status
	text   string
}

var recommendations = []recommendation{
	{func(c *Checks) Status { return c.Title.Status },
		"Write a unique, descriptive page title between 30 and 60 characters."},
	{func(c *Checks) Status { return c.Description.Status },
		"Add a meta description between 120 and 160 characters summarizing the page."},
	{func(c *Checks) Status { return c.Headings.Status },
		"Use exactly one H1 heading and organize content under descriptive subheadings."},
	{func(c *Checks) Status { return c.Images.Status },
		"Add descriptive alt text to every image."},
	{func(c *Checks) Status { return c.Mobile.Status },
		"Add a viewport meta tag with width=device-width so the page renders well on mobile."},
	{func(c *Checks) Status { return c.Speed.Status },
		"Reduce page load time by optimizing images, scripts, and server response times."},
	{func(c *Checks) Status { return c.SSL.Status },
		"Serve the site over HTTPS with a valid certificate."},
	{func(c *Checks) Status { return c.Schema.Status },
		"Add JSON-LD structured data to help search engines understand the page."},
	{func(c *Checks) Status { return c.Robots.Status },
		"Add a robots.txt file to control how crawlers access the site."},
	{func(c *Checks) Status { return c.Sitemap.Status },
		"Add an XML sitemap and reference it from robots.txt."},
}

// tally counts verdicts by status across all twelve checks.
func tally(checks *Checks) IssueTally {
	var t IssueTally
	for _, s := range checks.statuses() {
		switch s {
		case StatusFail:
			t.Critical++
		case StatusWarning:
			t.Warning++
		default:
			t.Passed++
		}
	}
	return t
}

// overallScore averages the per-check numeric mapping, rounded to the
// nearest integer.
func overallScore(checks *Checks) int {
	var sum float64
	for _, s := range checks.statuses() {
		sum += statusScore[s]
	}
	return int(math.Round(sum / CheckCount))
}

// recommend collects the fixed remediation string for every non-pass check,
// in canonical order.
func recommend(checks *Checks) []string {
	out := []string{}
	for _, r := range recommendations {
		if r.status(checks) != StatusPass {
			out = append(out, r.text)
		}
	}
	return out
}
