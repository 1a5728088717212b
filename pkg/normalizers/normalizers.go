// Package normalizers canonicalizes the noisy multilingual free-text fields
// used by matching. Hebrew, Arabic, and English spelling variants of the same
// city or property type collapse into one canonical token so the engine can
// compare with plain equality. All tables are compiled once at process start
// and every function is pure.
package normalizers

import (
	"encoding/json"
	"regexp"
	"strings"
)

type canonicalPattern struct {
	pattern *regexp.Regexp
	token   string
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// locationTable maps city/area spelling variants to a canonical token.
// Patterns are matched against a lowercased, whitespace-collapsed string.
var locationTable = []canonicalPattern{
	{regexp.MustCompile(`^(?:תל[ -]?אביב(?:[ -]?יפו)?|ת"א|تل[ -]?أبيب|tel[ -]?aviv(?:[ -]?yafo)?|tlv)$`), "tel aviv"},
	{regexp.MustCompile(`^(?:ירושלים|القدس|أورشليم|jerusalem)$`), "jerusalem"},
	{regexp.MustCompile(`^(?:חיפה|حيفا|haifa)$`), "haifa"},
	{regexp.MustCompile(`^(?:באר[ -]?שבע|بئر[ -]?السبع|beer[ -]?sheva|beersheba)$`), "beer sheva"},
	{regexp.MustCompile(`^(?:נתניה|نتانيا|netanya|nathanya)$`), "netanya"},
	{regexp.MustCompile(`^(?:רמת[ -]?גן|رمات[ -]?غان|ramat[ -]?gan)$`), "ramat gan"},
	{regexp.MustCompile(`^(?:ראשון[ -]?לציון|ريشون[ -]?لتسيون|rishon[ -]?lezion|rishon[ -]?letzion)$`), "rishon lezion"},
	{regexp.MustCompile(`^(?:פתח[ -]?תקוו?ה|بتاح[ -]?تكفا|petah[ -]?tikvah?|petach[ -]?tikvah?)$`), "petah tikva"},
	{regexp.MustCompile(`^(?:אשדוד|أشدود|ashdod)$`), "ashdod"},
	{regexp.MustCompile(`^(?:הרצליה|هرتسليا|herzliyah?|hertzliyah?)$`), "herzliya"},
	{regexp.MustCompile(`^(?:אילת|إيلات|eilat|elat)$`), "eilat"},
	{regexp.MustCompile(`^(?:נצרת|الناصرة|nazareth)$`), "nazareth"},
	{regexp.MustCompile(`^(?:חולון|حولون|holon)$`), "holon"},
	{regexp.MustCompile(`^(?:בני[ -]?ברק|بني[ -]?براك|bnei[ -]?brak)$`), "bnei brak"},
}

// propertyTypeTable maps property-type spelling variants to a canonical token.
var propertyTypeTable = []canonicalPattern{
	{regexp.MustCompile(`^(?:דירה|דירות|شقة|شقه|apartment|apartments|flat|appartment)$`), "apartment"},
	{regexp.MustCompile(`^(?:דירת[ -]?גן|شقة[ -]?أرضية|garden[ -]?apartment)$`), "garden apartment"},
	{regexp.MustCompile(`^(?:בית|בית[ -]?פרטי|بيت|منزل|house|private[ -]?house)$`), "house"},
	{regexp.MustCompile(`^(?:וילה|וילות|فيلا|فلل|villa|villas)$`), "villa"},
	{regexp.MustCompile(`^(?:פנטהאוז|פנטהאוס|بنتهاوس|penthouse)$`), "penthouse"},
	{regexp.MustCompile(`^(?:דופלקס|دوبلكس|duplex)$`), "duplex"},
	{regexp.MustCompile(`^(?:סטודיו|ستوديو|studio)$`), "studio"},
	{regexp.MustCompile(`^(?:קוטג['׳]?|كوخ|cottage)$`), "cottage"},
	{regexp.MustCompile(`^(?:מגרש|קרקע|أرض|قطعة[ -]?أرض|land|lot|plot)$`), "land"},
	{regexp.MustCompile(`^(?:משרד|משרדים|مكتب|office|offices)$`), "office"},
	{regexp.MustCompile(`^(?:חנות|محل|متجر|shop|store)$`), "shop"},
	{regexp.MustCompile(`^(?:מחסן|مخزن|مستودع|warehouse|storage)$`), "warehouse"},
}

// statusTable maps offer-status variants to for_sale / for_rent.
var statusTable = []canonicalPattern{
	{regexp.MustCompile(`^(?:for[ -_]?sale|sale|selling|למכירה|للبيع)$`), "for_sale"},
	{regexp.MustCompile(`^(?:for[ -_]?rent|rent|rental|renting|להשכרה|للإيجار|للايجار)$`), "for_rent"},
}

// intentTable maps client-intent variants to buyer / renter / both.
var intentTable = []canonicalPattern{
	{regexp.MustCompile(`^(?:buyer|buy|buying|purchase|קונה|קנייה|شراء|مشتري)$`), "buyer"},
	{regexp.MustCompile(`^(?:renter|rent|renting|tenant|שוכר|השכרה|مستأجر|إيجار)$`), "renter"},
	{regexp.MustCompile(`^(?:both|any|buyer[ -_]?renter|גם[ -]?וגם)$`), "both"},
}

// clean lowercases, trims, and collapses internal whitespace.
func clean(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}

func applyTable(table []canonicalPattern, s string) string {
	cleaned := clean(s)
	if cleaned == "" {
		return ""
	}
	for _, entry := range table {
		if entry.pattern.MatchString(cleaned) {
			return entry.token
		}
	}
	return cleaned
}

// NormalizeLocation canonicalizes a free-text city/area string.
func NormalizeLocation(s string) string {
	return applyTable(locationTable, s)
}

// NormalizePropertyType canonicalizes a free-text property-type string.
func NormalizePropertyType(s string) string {
	return applyTable(propertyTypeTable, s)
}

// NormalizeStatus canonicalizes a listing's offer status.
func NormalizeStatus(s string) string {
	return applyTable(statusTable, s)
}

// NormalizeIntent canonicalizes a client's intent. Unrecognized or empty
// values map to "unknown".
func NormalizeIntent(s string) string {
	cleaned := clean(s)
	if cleaned == "" {
		return "unknown"
	}
	for _, entry := range intentTable {
		if entry.pattern.MatchString(cleaned) {
			return entry.token
		}
	}
	return "unknown"
}

// NormalizeTypeList accepts a scalar or array property-type value (upstream
// data stores both) and returns normalized tokens. Unknown or empty input
// yields an empty list, which downstream scoring treats as "no constraint".
func NormalizeTypeList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		return tokenize(v)
	case []string:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			tokens = append(tokens, tokenize(item)...)
		}
		return tokens
	case []any:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tokens = append(tokens, tokenize(s)...)
			}
		}
		return tokens
	case json.RawMessage:
		return normalizeRawTypeList(v)
	case []byte:
		return normalizeRawTypeList(v)
	default:
		return []string{}
	}
}

func normalizeRawTypeList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// raw free text that was never JSON-encoded
		return tokenize(string(raw))
	}
	return NormalizeTypeList(decoded)
}

func tokenize(s string) []string {
	token := NormalizePropertyType(s)
	if token == "" {
		return []string{}
	}
	return []string{token}
}
