// Package validate carries content rules shared between binding-time
// validation and the services.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/learnora/backend/internal/apperr"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// AllowedLinkDomain is the only external domain material content may link to.
const AllowedLinkDomain = "youtube.com"

// ContainsExternalLinks reports whether text links anywhere outside the
// allowed domain.
func ContainsExternalLinks(text string) bool {
	for _, url := range urlPattern.FindAllString(text, -1) {
		if !strings.Contains(url, AllowedLinkDomain) {
			return true
		}
	}
	return false
}

// NoExternalLinks is registered with gin's binding engine under the
// "noextlinks" tag.
func NoExternalLinks(fl validator.FieldLevel) bool {
	return !ContainsExternalLinks(fl.Field().String())
}

// CheckMaterialContent re-runs the link rule at the service level so the
// constraint holds regardless of transport.
func CheckMaterialContent(description string, videoURL *string) error {
	var fields []apperr.FieldError
	if ContainsExternalLinks(description) {
		fields = append(fields, apperr.FieldError{
			Field:  "description",
			Reason: "materials must not link to external resources other than " + AllowedLinkDomain,
		})
	}
	if videoURL != nil && *videoURL != "" && ContainsExternalLinks(*videoURL) {
		fields = append(fields, apperr.FieldError{
			Field:  "video_url",
			Reason: "video links must point to " + AllowedLinkDomain,
		})
	}
	if len(fields) > 0 {
		return apperr.Validation("material content contains disallowed links", fields...)
	}
	return nil
}
