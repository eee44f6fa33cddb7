package audit

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marketpulse/seo-audit/internal/extract"
	"github.com/marketpulse/seo-audit/internal/fetch"
)

// Title length bounds in characters.
const (
	titleMin = 30
	titleMax = 60
)

// Meta description length bounds in characters.
const (
	descriptionMin = 120
	descriptionMax = 160
)

// Load time thresholds.
const (
	speedPassMs = 3000
	speedFailMs = 5000
)

func evaluateTitle(title string) TitleCheck {
	check := TitleCheck{Length: utf8.RuneCountInString(title), Value: title}
	switch {
	case check.Length == 0:
		check.Status = StatusFail
		check.Message = "Page title is missing"
	case check.Length < titleMin:
		check.Status = StatusWarning
		check.Message = "Title is too short (under 30 characters)"
	case check.Length > titleMax:
		check.Status = StatusWarning
		check.Message = "Title is too long (over 60 characters)"
	default:
		check.Status = StatusPass
		check.Message = "Title length is optimal"
	}
	return check
}

func evaluateDescription(description string) DescriptionCheck {
	check := DescriptionCheck{Length: utf8.RuneCountInString(description), Value: description}
	switch {
	case check.Length == 0:
		check.Status = StatusFail
		check.Message = "Meta description is missing"
	case check.Length < descriptionMin:
		check.Status = StatusWarning
		check.Message = "Meta description is too short (under 120 characters)"
	case check.Length > descriptionMax:
		check.Status = StatusWarning
		check.Message = "Meta description is too long (over 160 characters)"
	default:
		check.Status = StatusPass
		check.Message = "Meta description length is optimal"
	}
	return check
}

func evaluateHeadings(headings []extract.Heading) HeadingsCheck {
	check := HeadingsCheck{TotalCount: len(headings)}
	for _, h := range headings {
		if h.Level == 1 {
			check.H1Count++
		}
	}

	switch {
	case check.H1Count == 0:
		check.Status = StatusFail
		check.Message = "No H1 heading found"
	case check.H1Count > 1:
		check.Status = StatusWarning
		check.Message = "Multiple H1 headings found"
	case check.TotalCount < 3:
		check.Status = StatusWarning
		check.Message = "Fewer than 3 headings on the page"
	default:
		check.Status = StatusPass
		check.Message = "Heading structure looks good"
	}
	return check
}

func evaluateImages(images []extract.Image) ImagesCheck {
	check := ImagesCheck{Total: len(images), MissingAlt: []string{}}
	for _, img := range images {
		if img.HasAlt {
			check.WithAlt++
		} else {
			check.MissingAlt = append(check.MissingAlt, img.Src)
		}
	}

	if check.Total == 0 {
		check.Status = StatusPass
		check.Message = "No images on the page"
		return check
	}

	ratio := float64(check.WithAlt) / float64(check.Total)
	switch {
	case ratio < 0.5:
		check.Status = StatusFail
		check.Message = "More than half of the images are missing alt text"
	case ratio < 0.8:
		check.Status = StatusWarning
		check.Message = "Some images are missing alt text"
	default:
		check.Status = StatusPass
		check.Message = "Most images have alt text"
	}
	return check
}

func evaluateMobile(viewport string, hasViewport bool) MobileCheck {
	check := MobileCheck{HasViewport: hasViewport, Content: viewport}
	switch {
	case !hasViewport:
		check.Status = StatusFail
		check.Message = "No viewport meta tag found"
	case !strings.Contains(viewport, "width=device-width"):
		check.Status = StatusWarning
		check.Message = "Viewport meta tag is missing width=device-width"
	default:
		check.Status = StatusPass
		check.Message = "Page is configured for mobile devices"
	}
	return check
}

func evaluateSpeed(loadTime time.Duration) SpeedCheck {
	ms := loadTime.Milliseconds()
	score := 100 - int(ms/100)
	if score < 0 {
		score = 0
	}

	check := SpeedCheck{LoadTimeMs: ms, Score: score}
	switch {
	case ms > speedFailMs:
		check.Status = StatusFail
		check.Message = "Page load time exceeds 5 seconds"
	case ms > speedPassMs:
		check.Status = StatusWarning
		check.Message = "Page load time is between 3 and 5 seconds"
	default:
		check.Status = StatusPass
		check.Message = "Page loads quickly"
	}
	return check
}

func evaluateSSL(scheme string, statusCode int) SSLCheck {
	check := SSLCheck{HTTPS: scheme == "https", StatusCode: statusCode}
	switch {
	case !check.HTTPS:
		check.Status = StatusFail
		check.Message = "Page is not served over HTTPS"
	case statusCode != 200:
		check.Status = StatusWarning
		check.Message = "HTTPS is enabled but the page did not return HTTP 200"
	default:
		check.Status = StatusPass
		check.Message = "HTTPS is enabled and the page loaded successfully"
	}
	return check
}

func evaluateInternalLinks(links []extract.Link) InternalLinksCheck {
	check := InternalLinksCheck{}
	for _, l := range links {
		if l.Internal {
			check.Count++
		}
	}

	switch {
	case check.Count == 0:
		check.Status = StatusFail
		check.Message = "No internal links found"
	case check.Count < 5:
		check.Status = StatusWarning
		check.Message = "Only a few internal links found"
	default:
		check.Status = StatusPass
		check.Message = "Good internal link coverage"
	}
	return check
}

// evaluateExternalLinks never fails: external links are not required, but a
// majority without rel=nofollow earns a warning.
func evaluateExternalLinks(links []extract.Link) ExternalLinksCheck {
	check := ExternalLinksCheck{}
	for _, l := range links {
		if l.Internal {
			continue
		}
		check.Count++
		if l.Nofollow {
			check.NofollowCount++
		}
	}

	if check.Count == 0 {
		check.Status = StatusPass
		check.Message = "No external links on the page"
		return check
	}

	if float64(check.NofollowCount)/float64(check.Count) < 0.5 {
		check.Status = StatusWarning
		check.Message = "Most external links are missing rel=nofollow"
	} else {
		check.Status = StatusPass
		check.Message = "External links are well managed"
	}
	return check
}

func evaluateSchema(types []string) SchemaCheck {
	check := SchemaCheck{Types: types}
	if check.Types == nil {
		check.Types = []string{}
	}

	if len(types) == 0 {
		check.Status = StatusWarning
		check.Message = "No structured data found"
	} else {
		check.Status = StatusPass
		check.Message = "Structured data detected"
	}
	return check
}

func evaluateRobots(res fetch.AuxResult) RobotsCheck {
	if !res.Exists {
		return RobotsCheck{Status: StatusWarning, Message: "robots.txt not found"}
	}
	return RobotsCheck{Status: StatusPass, Message: "robots.txt is present", Exists: true}
}

func evaluateSitemap(res fetch.AuxResult) SitemapCheck {
	if !res.Exists {
		return SitemapCheck{Status: StatusWarning, Message: "sitemap.xml not found"}
	}
	return SitemapCheck{Status: StatusPass, Message: "sitemap.xml is present", Exists: true}
}
