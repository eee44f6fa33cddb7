package audit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/marketpulse/seo-audit/internal/extract"
	"github.com/marketpulse/seo-audit/internal/fetch"
	"github.com/marketpulse/seo-audit/internal/validate"
)

// PageFetcher renders the target page. Satisfied by *fetch.Renderer.
type PageFetcher interface {
	Render(ctx context.Context, targetURL string) (*fetch.RenderedPage, error)
}

// AuxChecker probes the target origin's well-known resources. Satisfied by
// *fetch.AuxClient.
type AuxChecker interface {
	Check(ctx context.Context, origin string) (robots, sitemap fetch.AuxResult)
}

// Runner executes complete audits. Each call to Run is independent: no state
// is shared between audits beyond the browser pool behind the fetcher.
type Runner struct {
	fetcher PageFetcher
	aux     AuxChecker
	log     *logrus.Logger
}

// NewRunner assembles the pipeline from its collaborators.
func NewRunner(fetcher PageFetcher, aux AuxChecker, log *logrus.Logger) *Runner {
	return &Runner{fetcher: fetcher, aux: aux, log: log}
}

// Run audits a single raw target URL and returns the full report. Validation
// errors and fetch errors abort the audit; absence of auxiliary resources and
// malformed structured data never do.
func (r *Runner) Run(ctx context.Context, rawURL string) (*Report, error) {
	target, err := validate.TargetURL(rawURL)
	if err != nil {
		return nil, err
	}
	targetStr := target.String()

	log := r.log.WithField("url", targetStr)
	log.Info("starting audit")

	page, err := r.fetcher.Render(ctx, targetStr)
	if err != nil {
		log.WithError(err).Error("page fetch failed")
		return nil, err
	}

	facts, err := extract.Parse(page.HTML, target)
	if err != nil {
		log.WithError(err).Error("extraction failed")
		return nil, err
	}

	robots, sitemap := r.aux.Check(ctx, validate.Origin(target))

	checks := Checks{
		Title:         evaluateTitle(facts.Title),
		Description:   evaluateDescription(facts.Description),
		Headings:      evaluateHeadings(facts.Headings),
		Images:        evaluateImages(facts.Images),
		Mobile:        evaluateMobile(facts.Viewport, facts.HasViewport),
		Speed:         evaluateSpeed(page.LoadTime),
		SSL:           evaluateSSL(target.Scheme, page.StatusCode),
		InternalLinks: evaluateInternalLinks(facts.Links),
		ExternalLinks: evaluateExternalLinks(facts.Links),
		Schema:        evaluateSchema(facts.SchemaTypes),
		Robots:        evaluateRobots(robots),
		Sitemap:       evaluateSitemap(sitemap),
	}

	report := &Report{
		URL:             targetStr,
		OverallScore:    overallScore(&checks),
		Issues:          tally(&checks),
		Checks:          checks,
		Recommendations: recommend(&checks),
		GeneratedAt:     time.Now().UTC(),
	}

	log.WithFields(logrus.Fields{
		"score":    report.OverallScore,
		"critical": report.Issues.Critical,
		"warning":  report.Issues.Warning,
		"loadMs":   page.LoadTime.Milliseconds(),
	}).Info("audit complete")

	return report, nil
}
