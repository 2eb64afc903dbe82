package catalog

import (
	"strings"
	"time"

	"github.com/acuna/shelfwise/util"
)

// identifierRule is one extraction step: if the predicate matches an
// identifier entry, transform yields the value to use. Rules run in priority
// order and the first match wins, which keeps the fallback chain auditable.
type identifierRule struct {
	match     func(industryIdentifier) bool
	transform func(industryIdentifier) string
}

var identifierRules = []identifierRule{
	{
		match:     func(id industryIdentifier) bool { return id.Type == "ISBN_13" },
		transform: func(id industryIdentifier) string { return id.Identifier },
	},
	{
		match:     func(id industryIdentifier) bool { return id.Type == "ISBN_10" },
		transform: func(id industryIdentifier) string { return id.Identifier },
	},
	{
		match: func(id industryIdentifier) bool {
			return id.Type == "OTHER" && strings.Contains(id.Identifier, "OCLC")
		},
		transform: func(id industryIdentifier) string {
			return strings.TrimSpace(strings.ReplaceAll(id.Identifier, "OCLC:", ""))
		},
	},
	{
		// Some old records shelve a bare ISBN under OTHER.
		match: func(id industryIdentifier) bool {
			return id.Type == "OTHER" && util.IsDigits(id.Identifier) &&
				(len(id.Identifier) == 10 || len(id.Identifier) == 13)
		},
		transform: func(id industryIdentifier) string { return id.Identifier },
	},
}

// ExtractIdentifier picks the best identifier from a heterogeneous list.
// Returns "" when no rule matches; the store assigns a fallback on insert.
func ExtractIdentifier(ids []industryIdentifier) string {
	for _, rule := range identifierRules {
		for _, id := range ids {
			if rule.match(id) {
				return rule.transform(id)
			}
		}
	}
	return ""
}

// ParsePublishedDate normalizes the provider's published-date field, which
// arrives as "2006", "2006-01" or "2006-01-02". Anything else reads as no
// date rather than failing the item.
func ParsePublishedDate(raw string) string {
	var layout string
	switch len(raw) {
	case 4:
		layout = "2006"
	case 7:
		layout = "2006-01"
	case 10:
		layout = "2006-01-02"
	default:
		return ""
	}

	parsed, err := time.Parse(layout, raw)
	if err != nil {
		return ""
	}
	return parsed.Format(layout)
}
