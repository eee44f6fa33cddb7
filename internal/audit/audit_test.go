package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpulse/seo-audit/internal/fetch"
	"github.com/marketpulse/seo-audit/internal/validate"
)

type stubFetcher struct {
	page     *fetch.RenderedPage
	err      error
	rendered []string
}

func (s *stubFetcher) Render(_ context.Context, targetURL string) (*fetch.RenderedPage, error) {
	s.rendered = append(s.rendered, targetURL)
	return s.page, s.err
}

type stubAux struct {
	robots  fetch.AuxResult
	sitemap fetch.AuxResult
}

func (s *stubAux) Check(context.Context, string) (fetch.AuxResult, fetch.AuxResult) {
	return s.robots, s.sitemap
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	return log
}

func auxPresent() *stubAux {
	return &stubAux{
		robots:  fetch.AuxResult{Exists: true, Content: "User-agent: *"},
		sitemap: fetch.AuxResult{Exists: true, Content: "<urlset/>"},
	}
}

// perfectPage is a page that passes all twelve checks: 45-character title,
// 140-character description, one h1 of four headings, device-width viewport,
// six internal links, two nofollowed external links, and JSON-LD.
func perfectPage() *fetch.RenderedPage {
	title := strings.Repeat("t", 45)
	description := strings.Repeat("d", 140)
	html := fmt.Sprintf(`<html><head>
		<title>%s</title>
		<meta name="description" content="%s">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<script type="application/ld+json">{"@type":"Organization"}</script>
	</head><body>
		<h1>One</h1><h2>Two</h2><h2>Three</h2><h3>Four</h3>
		<a href="/a">a</a><a href="/b">b</a><a href="/c">c</a>
		<a href="/d">d</a><a href="/e">e</a><a href="/f">f</a>
		<a href="https://other.com/1" rel="nofollow">x</a>
		<a href="https://other.com/2" rel="nofollow">y</a>
	</body></html>`, title, description)

	return &fetch.RenderedPage{HTML: html, StatusCode: 200, LoadTime: 1200 * time.Millisecond}
}

func TestRun_AllChecksPass(t *testing.T) {
	fetcher := &stubFetcher{page: perfectPage()}
	runner := NewRunner(fetcher, auxPresent(), testLogger())

	report, err := runner.Run(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, 100, report.OverallScore)
	assert.Equal(t, IssueTally{Passed: 12}, report.Issues)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, "https://example.com", report.URL)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, time.UTC, report.GeneratedAt.Location())

	for _, status := range report.Checks.statuses() {
		assert.Equal(t, StatusPass, status)
	}
}

func TestRun_BarePage(t *testing.T) {
	fetcher := &stubFetcher{page: &fetch.RenderedPage{
		HTML:       "<html><head></head><body><p>nothing here</p></body></html>",
		StatusCode: 200,
		LoadTime:   6 * time.Second,
	}}
	runner := NewRunner(fetcher, &stubAux{}, testLogger())

	report, err := runner.Run(context.Background(), "http://example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusFail, report.Checks.Title.Status)
	assert.Equal(t, StatusFail, report.Checks.Description.Status)
	assert.Equal(t, StatusFail, report.Checks.Headings.Status)
	assert.Equal(t, StatusFail, report.Checks.Mobile.Status)
	assert.Equal(t, StatusFail, report.Checks.Speed.Status)
	assert.Equal(t, StatusFail, report.Checks.SSL.Status)
	assert.Equal(t, StatusPass, report.Checks.Images.Status)

	assert.Less(t, report.OverallScore, 50)
	assert.Equal(t, CheckCount, report.Issues.Critical+report.Issues.Warning+report.Issues.Passed)

	recs := strings.Join(report.Recommendations, "\n")
	assert.Contains(t, recs, "title")
	assert.Contains(t, recs, "meta description")
	assert.Contains(t, recs, "H1")
	assert.Contains(t, recs, "viewport")
	assert.Contains(t, recs, "load time")
	assert.Contains(t, recs, "HTTPS")
}

func TestRun_MalformedJSONLDStillCompletes(t *testing.T) {
	fetcher := &stubFetcher{page: &fetch.RenderedPage{
		HTML: `<html><head><title>x</title>
			<script type="application/ld+json">{broken</script>
		</head><body><h1>h</h1></body></html>`,
		StatusCode: 200,
		LoadTime:   time.Second,
	}}
	runner := NewRunner(fetcher, auxPresent(), testLogger())

	report, err := runner.Run(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, StatusWarning, report.Checks.Schema.Status)
	assert.Empty(t, report.Checks.Schema.Types)
}

func TestRun_ValidationFailureSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{page: perfectPage()}
	runner := NewRunner(fetcher, auxPresent(), testLogger())

	_, err := runner.Run(context.Background(), "http://192.168.1.5/admin")
	require.Error(t, err)

	var blockedErr *validate.BlockedHostError
	assert.ErrorAs(t, err, &blockedErr)
	assert.Empty(t, fetcher.rendered, "no fetch should happen for a blocked target")
}

func TestRun_SchemelessInputAuditedOverHTTPS(t *testing.T) {
	fetcher := &stubFetcher{page: perfectPage()}
	runner := NewRunner(fetcher, auxPresent(), testLogger())

	report, err := runner.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", report.URL)
	require.Len(t, fetcher.rendered, 1)
	assert.Equal(t, "https://example.com", fetcher.rendered[0])
}

func TestRun_FetchFailureAbortsAudit(t *testing.T) {
	fetchErr := &fetch.Error{URL: "https://example.com", Message: "navigation failed", Cause: errors.New("timeout")}
	fetcher := &stubFetcher{err: fetchErr}
	runner := NewRunner(fetcher, auxPresent(), testLogger())

	report, err := runner.Run(context.Background(), "https://example.com")
	assert.Nil(t, report, "no partial report on fetch failure")

	var fe *fetch.Error
	assert.ErrorAs(t, err, &fe)
}
