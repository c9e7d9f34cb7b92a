package extract

import "regexp"

// Patterns that identify product/model sheets by name: category prefixes,
// a parenthesized SKU of three or more alphanumerics, and common appliance
// model-line codes appearing anywhere in the name.
var modelSheetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(dryer|washer|cooler|refrigerator|fridge|cooling|cooking|washing)`),
	regexp.MustCompile(`(?i)\([A-Z0-9]{3,}\)`),
	regexp.MustCompile(`(?i)(GTD|SMG|WTW|WMH|GFE|GSS)`),
}

// DetectModelSheets filters sheet names down to the ones that look like
// product model sheets. When nothing matches, the first sheet is returned
// as a fallback so callers always have a candidate to extract from.
func DetectModelSheets(names []string) []string {
	var detected []string
	for _, name := range names {
		for _, pattern := range modelSheetPatterns {
			if pattern.MatchString(name) {
				detected = append(detected, name)
				break
			}
		}
	}
	if len(detected) > 0 {
		return detected
	}
	if len(names) > 0 {
		return names[:1]
	}
	return nil
}
