package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// checksWithStatuses builds a Checks value whose twelve statuses are taken
// from the slice in canonical order.
func checksWithStatuses(s [CheckCount]Status) *Checks {
	return &Checks{
		Title:         TitleCheck{Status: s[0]},
		Description:   DescriptionCheck{Status: s[1]},
		Headings:      HeadingsCheck{Status: s[2]},
		Images:        ImagesCheck{Status: s[3]},
		Mobile:        MobileCheck{Status: s[4]},
		Speed:         SpeedCheck{Status: s[5]},
		SSL:           SSLCheck{Status: s[6]},
		InternalLinks: InternalLinksCheck{Status: s[7]},
		ExternalLinks: ExternalLinksCheck{Status: s[8]},
		Schema:        SchemaCheck{Status: s[9]},
		Robots:        RobotsCheck{Status: s[10]},
		Sitemap:       SitemapCheck{Status: s[11]},
	}
}

func uniform(status Status) [CheckCount]Status {
	var out [CheckCount]Status
	for i := range out {
		out[i] = status
	}
	return out
}

func TestTally_AlwaysSumsToTwelve(t *testing.T) {
	cases := [][CheckCount]Status{
		uniform(StatusPass),
		uniform(StatusFail),
		uniform(StatusWarning),
		{StatusFail, StatusFail, StatusWarning, StatusPass, StatusPass, StatusPass,
			StatusWarning, StatusFail, StatusPass, StatusWarning, StatusPass, StatusPass},
	}

	for _, statuses := range cases {
		got := tally(checksWithStatuses(statuses))
		assert.Equal(t, CheckCount, got.Critical+got.Warning+got.Passed)
	}
}

func TestTally_CountsByStatus(t *testing.T) {
	got := tally(checksWithStatuses([CheckCount]Status{
		StatusFail, StatusFail, StatusFail,
		StatusWarning, StatusWarning,
		StatusPass, StatusPass, StatusPass, StatusPass, StatusPass, StatusPass, StatusPass,
	}))

	assert.Equal(t, IssueTally{Critical: 3, Warning: 2, Passed: 7}, got)
}

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name     string
		statuses [CheckCount]Status
		want     int
	}{
		{"all pass", uniform(StatusPass), 100},
		{"all fail", uniform(StatusFail), 0},
		{"all warning", uniform(StatusWarning), 60},
		{
			// (11*100 + 60) / 12 = 96.67, rounds to 97
			"eleven pass one warning",
			[CheckCount]Status{StatusWarning, StatusPass, StatusPass, StatusPass,
				StatusPass, StatusPass, StatusPass, StatusPass, StatusPass,
				StatusPass, StatusPass, StatusPass},
			97,
		},
		{
			// (6*100 + 3*60 + 3*0) / 12 = 65
			"mixed",
			[CheckCount]Status{StatusFail, StatusFail, StatusFail,
				StatusWarning, StatusWarning, StatusWarning,
				StatusPass, StatusPass, StatusPass, StatusPass, StatusPass, StatusPass},
			65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overallScore(checksWithStatuses(tt.statuses))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestRecommend_AllPassIsEmpty(t *testing.T) {
	got := recommend(checksWithStatuses(uniform(StatusPass)))
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestRecommend_OrderFollowsCheckOrder(t *testing.T) {
	got := recommend(checksWithStatuses(uniform(StatusFail)))

	// Link checks carry no recommendation text, so a fully failing page
	// yields ten recommendations.
	assert.Len(t, got, 10)
	assert.Contains(t, got[0], "title")
	assert.Contains(t, got[1], "meta description")
	assert.Contains(t, got[2], "H1")
}

// Internal and external link warnings produce no recommendation text; this
// mirrors the behavior of the deployed scorer.
func TestRecommend_LinkChecksContributeNothing(t *testing.T) {
	statuses := uniform(StatusPass)
	statuses[7] = StatusFail    // internal links
	statuses[8] = StatusWarning // external links

	got := recommend(checksWithStatuses(statuses))
	assert.Empty(t, got)
}
