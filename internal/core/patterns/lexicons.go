package patterns

// IntentClass is one intent category with its keyword list. Classification is
// substring membership, not regex; the first class with a hit wins, so the
// slice order below is the tie-break order.
type IntentClass struct {
	Intent   string
	Keywords []string
}

// IntentClasses in priority order: BUY before RENT before SELL before INVEST.
var IntentClasses = []IntentClass{
	{Intent: "BUY", Keywords: []string{"buy", "purchase", "invest", "own", "ownership", "شراء"}},
	{Intent: "RENT", Keywords: []string{"rent", "lease", "rental", "monthly", "tenant", "إيجار", "ايجار"}},
	{Intent: "SELL", Keywords: []string{"sell", "selling", "market", "list", "offer", "بيع"}},
	{Intent: "INVEST", Keywords: []string{"investment", "roi", "return", "profit", "portfolio", "استثمار"}},
}

// Sentiment lexicons, checked by case-insensitive substring containment.
var (
	PositiveWords = []string{"excellent", "perfect", "amazing", "interested", "ready", "urgent", "serious", "ممتاز", "مهتم"}
	NegativeWords = []string{"expensive", "small", "far", "bad", "disappointed", "not interested", "غالي"}
)

// Urgency lexicons. Any urgent word forces high; the soon words give medium.
var (
	UrgentWords = []string{"urgent", "asap", "immediately", "today", "now", "quick", "عاجل", "ضروري"}
	SoonWords   = []string{"soon", "this week", "قريبا", "قريباً"}
)

// SynonymClasses groups property type labels treated as near-equivalent when
// scoring type compatibility.
var SynonymClasses = map[string][]string{
	"apartment": {"flat", "unit"},
	"villa":     {"house", "townhouse"},
	"studio":    {"loft"},
}
