package formimport

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	viewFormMarker      = "/viewform"
	formsHost           = "docs.google.com"
	viewFormURLTemplate = "https://docs.google.com/forms/d/e/%s/viewform"
)

// Ordered from most to least specific. The published pattern must run before the
// generic one, which would otherwise capture the "e" path segment.
var formIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/forms/d/([a-zA-Z0-9_-]+)/edit`),
	regexp.MustCompile(`/forms/d/e/([a-zA-Z0-9_-]+)/viewform`),
	regexp.MustCompile(`/forms/d/([a-zA-Z0-9_-]+)`),
}

// ExtractFormID returns the form identifier embedded in a Google Forms URL.
func ExtractFormID(rawURL string) (string, bool) {
	for _, pattern := range formIDPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// ViewFormURL returns the page to fetch for formID. Google URLs that already
// point at the view page are used verbatim. Any other host gets the canonical
// view URL so that user input never picks the fetch target.
func ViewFormURL(rawURL, formID string) string {
	if strings.Contains(rawURL, viewFormMarker) && isFormsHost(rawURL) {
		return rawURL
	}
	return fmt.Sprintf(viewFormURLTemplate, formID)
}

func isFormsHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "https" && strings.EqualFold(parsed.Hostname(), formsHost)
}

// Locate combines ExtractFormID and ViewFormURL.
func Locate(rawURL string) (formID, fetchURL string, err error) {
	rawURL = strings.TrimSpace(rawURL)
	formID, ok := ExtractFormID(rawURL)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return formID, ViewFormURL(rawURL, formID), nil
}
