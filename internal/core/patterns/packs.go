// Package patterns is the static pattern library for requirement extraction.
// Matchers are ordered per field and grouped into locale packs; extraction
// evaluates the packs in sequence and the first matching pattern wins.
package patterns

import "regexp"

// Pack is one locale's ordered matcher lists. Pure data, no state.
type Pack struct {
	Locale       string
	Budget       []*regexp.Regexp
	Location     []*regexp.Regexp
	PropertyType []*regexp.Regexp
	Bedrooms     []*regexp.Regexp
	Bathrooms    []*regexp.Regexp
	Size         []*regexp.Regexp
	Phone        []*regexp.Regexp
	Email        []*regexp.Regexp
}

const amount = `(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`

var english = Pack{
	Locale: "en",
	Budget: []*regexp.Regexp{
		regexp.MustCompile(`(?i)budget[:\s]*` + amount + `\s*(egp|le|pounds?|million|k|thousand)\b`),
		regexp.MustCompile(`(?i)` + amount + `\s*(egp|le|pounds?|million|k|thousand)\s*budget`),
		regexp.MustCompile(`(?i)can\s+afford[:\s]*` + amount + `\s*(egp|le|pounds?|million|k|thousand)\b`),
		regexp.MustCompile(`(?i)up\s+to[:\s]*` + amount + `\s*(egp|le|pounds?|million|k|thousand)\b`),
		regexp.MustCompile(`(?i)max[:\s]*` + amount + `\s*(egp|le|pounds?|million|k|thousand)\b`),
		regexp.MustCompile(`(?i)` + amount + `\s*(egp|le|pounds?|million|k|thousand)\b`),
	},
	Location: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:in|at|near|around)\s+([a-z][a-z\s]*?(?:city|area|district|zone|compound|new\s+capital|6th\s+october|sheikh\s+zayed|maadi|zamalek|heliopolis|nasr\s+city))`),
		regexp.MustCompile(`(?i)location[:\s]+([a-z][a-z\s]*)`),
		regexp.MustCompile(`(?i)(new\s+administrative\s+capital|new\s+capital|6th\s+of\s+october|sheikh\s+zayed|maadi|zamalek|heliopolis|nasr\s+city|downtown|garden\s+city|dokki|mohandeseen|giza|alexandria|hurghada|sharm\s+el\s+sheikh)`),
	},
	PropertyType: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(apartment|flat|villa|townhouse|duplex|studio|penthouse|chalet|office|shop|warehouse|land|plot)\b`),
		regexp.MustCompile(`(?i)property\s*type[:\s]*([a-z]+)`),
	},
	Bedrooms: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)[\s-]*(?:bed(?:room)?s?|br)\b`),
	},
	Bathrooms: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)[\s-]*(?:bath(?:room)?s?)\b`),
	},
	Size: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:sqm|m2|m²|meters?|square\s*meters?)\b`),
	},
	Phone: []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:call|contact|phone|mobile|whatsapp)[:\s]*(\+?20\d{10}|\d{11})`),
		regexp.MustCompile(`(\+?20\d{10})`),
	},
	Email: []*regexp.Regexp{
		regexp.MustCompile(`(?i)([a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,})`),
	},
}

var arabic = Pack{
	Locale: "ar",
	Budget: []*regexp.Regexp{
		regexp.MustCompile(`ميزانية[:\s]*` + amount + `\s*(جنيه|مليون|ألف|الف)`),
		regexp.MustCompile(amount + `\s*(جنيه|مليون|ألف|الف)`),
	},
	Location: []*regexp.Regexp{
		regexp.MustCompile(`(القاهرة الجديدة|المعادي|الزمالك|مصر الجديدة|مدينة نصر|الشيخ زايد|السادس من أكتوبر|وسط البلد|الدقي|المهندسين|الجيزة|الاسكندرية)`),
		regexp.MustCompile(`(?:في|بـ)\s+([\p{Arabic}][\p{Arabic}\s]*)`),
	},
	PropertyType: []*regexp.Regexp{
		regexp.MustCompile(`(شقة|فيلا|دوبلكس|استوديو|بنتهاوس|شاليه|تاون هاوس|محل|مكتب|مخزن|قطعة أرض|أرض)`),
	},
	Bedrooms: []*regexp.Regexp{
		regexp.MustCompile(`(\d+)[\s-]*(?:غرفة|غرف)`),
	},
	Bathrooms: []*regexp.Regexp{
		regexp.MustCompile(`(\d+)[\s-]*(?:حمام|حمامات)`),
	},
	Size: []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:متر مربع|متر|م٢)`),
	},
}

// Default returns the locale packs in evaluation order.
func Default() []Pack {
	return []Pack{english, arabic}
}

// arabicTypes maps Arabic property type labels onto the canonical vocabulary
// so demand and supply compare on the same terms.
var arabicTypes = map[string]string{
	"شقة":       "apartment",
	"فيلا":      "villa",
	"دوبلكس":    "duplex",
	"استوديو":   "studio",
	"بنتهاوس":   "penthouse",
	"شاليه":     "chalet",
	"تاون هاوس": "townhouse",
	"محل":       "shop",
	"مكتب":      "office",
	"مخزن":      "warehouse",
	"أرض":       "land",
	"قطعة أرض":  "plot",
}

// CanonicalType normalizes an extracted property type label.
func CanonicalType(raw string) string {
	if canonical, ok := arabicTypes[raw]; ok {
		return canonical
	}
	return raw
}
