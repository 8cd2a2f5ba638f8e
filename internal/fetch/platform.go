package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known job boards
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps a host suffix to its platform
var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

var platformContent = map[Platform][]string{
	PlatformGreenhouse: {".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
	PlatformLever:      {".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
	PlatformWorkday:    {"[data-automation-id='jobDescription']", ".job-description"},
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	if selectors, ok := platformContent[platform]; ok {
		return selectors
	}
	return JobPostingSelectors()
}

// commonNoise covers application forms, EEO blocks, share buttons and cookie banners
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".self-identification",
	".social-share", ".share-buttons",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

var platformNoise = map[Platform][]string{
	PlatformGreenhouse: {".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	PlatformLever:      {".apply-section", ".lever-application-form", ".posting-apply"},
	PlatformWorkday:    {"[data-automation-id='applyButton']", ".application-section"},
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	return append(out, platformNoise[platform]...)
}
