package service

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// medicalConditionTable maps raw Vietnamese medical phrases to the
// canonical catalog category used for product search.
var medicalConditionTable = map[string]string{
	// Đau đầu / Não / Thần kinh
	"đau đầu":    "thần kinh não",
	"nhức đầu":   "thần kinh não",
	"migraine":   "thần kinh não",
	"não":        "thần kinh não",
	"thần kinh":  "thần kinh não",
	"trí nhớ":    "thần kinh não",
	"memory":     "thần kinh não",

	// Ho / Hô hấp
	"ho":       "thuốc ho",
	"cough":    "thuốc ho",
	"long đờm": "thuốc ho",
	"giảm ho":  "thuốc ho",
	"siro ho":  "thuốc ho",
	"hô hấp":   "hô hấp",

	// Đau lưng / Xương khớp
	"đau lưng":   "xương khớp",
	"đau xương":  "xương khớp",
	"đau khớp":   "xương khớp",
	"viêm khớp":  "xương khớp",
	"thoái hóa":  "xương khớp",
	"xương khớp": "xương khớp",
	"back pain":  "xương khớp",
	"joint pain": "xương khớp",

	// Vitamin / Khoáng chất
	"vitamin":     "vitamin",
	"khoáng chất": "vitamin",
	"bổ sung":     "vitamin",
	"calcium":     "calcium canxi",
	"canxi":       "calcium canxi",
	"xương":       "calcium canxi",

	// Tim mạch
	"tim mạch":       "tim mạch",
	"tim":            "tim mạch",
	"huyết áp":       "huyết áp",
	"cardiovascular": "tim mạch",
	"heart":          "tim mạch",

	// Tiêu hóa
	"tiêu hóa":    "tiêu hóa",
	"dạ dày":      "tiêu hóa",
	"đau dạ dày":  "tiêu hóa",
	"đường ruột":  "tiêu hóa",
	"stomach":     "tiêu hóa",
	"digestion":   "tiêu hóa",

	// Da / Mụn
	"da":       "dưỡng da",
	"kem":      "dưỡng da",
	"dưỡng da": "dưỡng da",
	"mụn":      "trị mụn",
	"acne":     "trị mụn",
	"trị mụn":  "trị mụn",
	"skin":     "dưỡng da",

	// Mắt
	"mắt":     "mắt",
	"eye":     "mắt",
	"cận thị": "mắt",

	// Giảm đau
	"giảm đau":    "giảm đau",
	"pain relief": "giảm đau",
	"đau":         "giảm đau",

	// Mất ngủ
	"mất ngủ":  "mất ngủ",
	"insomnia": "mất ngủ",
	"ngủ":      "mất ngủ",

	// Tiểu đường
	"tiểu đường":  "tiểu đường",
	"diabetes":    "tiểu đường",
	"đường huyết": "tiểu đường",

	// Gan
	"gan":          "gan",
	"liver":        "gan",
	"giải độc gan": "gan",
}

// productIntentSignals mark a message as asking for a product suggestion.
var productIntentSignals = []string{
	"thuốc", "sản phẩm", "mua", "cần", "tìm", "gợi ý", "đề xuất",
	"vitamin", "thực phẩm chức năng", "kem", "dầu", "siro", "viên",
}

var intentStopWords = map[string]bool{
	"tôi": true, "bạn": true, "của": true, "và": true, "cho": true,
	"với": true, "là": true, "một": true, "các": true, "để": true,
	"có": true, "đang": true, "bị": true, "cần": true, "loại": true,
	"thuốc": true, "liên": true, "quan": true, "đến": true, "hãy": true,
	"gợi": true, "sản": true, "phẩm": true, "nào": true, "thể": true,
	"trị": true, "không": true, "được": true, "giúp": true, "hỗ": true,
	"trợ": true,
}

// IntentExtractor maps free-text symptoms and keywords to a canonical
// search term for the product catalog.
type IntentExtractor struct {
	// phrases holds the table keys longest first so a specific phrase
	// ("đau lưng") always wins over a generic one ("đau") that is also a
	// substring of the message. Do not replace this with a map lookup.
	phrases []string
}

func NewIntentExtractor() *IntentExtractor {
	phrases := make([]string, 0, len(medicalConditionTable))
	for phrase := range medicalConditionTable {
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(phrases[i]), utf8.RuneCountInString(phrases[j])
		if li != lj {
			return li > lj
		}
		return phrases[i] < phrases[j]
	})
	return &IntentExtractor{phrases: phrases}
}

// ExtractIntent returns the canonical search term for the message, or the
// empty string when no intent can be inferred. An empty result means the
// caller must skip product search for this turn.
func (e *IntentExtractor) ExtractIntent(message string) string {
	lower := strings.ToLower(message)

	for _, phrase := range e.phrases {
		if strings.Contains(lower, phrase) {
			return medicalConditionTable[phrase]
		}
	}

	if !e.hasProductIntent(lower) {
		return ""
	}

	keywords := significantTokens(lower)
	if len(keywords) == 0 {
		return ""
	}
	// Longest tokens first, at most three, best-effort search term.
	sort.SliceStable(keywords, func(i, j int) bool {
		return utf8.RuneCountInString(keywords[i]) > utf8.RuneCountInString(keywords[j])
	})
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return strings.Join(keywords, " ")
}

func (e *IntentExtractor) hasProductIntent(lower string) bool {
	for _, signal := range productIntentSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}

// significantTokens strips punctuation and digits, splits on whitespace
// and drops stop words and tokens of two runes or fewer.
func significantTokens(lower string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lower)

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) <= 2 || intentStopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
