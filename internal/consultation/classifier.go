package consultation

import "strings"

// Classifier maps free text to zero or more labels.
type Classifier interface {
	Classify(text string) []string
}

// Entry is one label and the keywords that select it.
type Entry struct {
	Label    string
	Keywords []string
}

// KeywordClassifier matches keywords as case-insensitive substrings. Labels
// are returned in vocabulary order, each at most once.
type KeywordClassifier struct {
	entries []Entry
}

// NewKeywordClassifier builds a classifier over the given vocabulary.
func NewKeywordClassifier(entries ...Entry) *KeywordClassifier {
	return &KeywordClassifier{entries: entries}
}

func (k *KeywordClassifier) Classify(text string) []string {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var labels []string
	for _, e := range k.entries {
		for _, kw := range e.Keywords {
			if strings.Contains(text, kw) {
				labels = append(labels, e.Label)
				break
			}
		}
	}
	return labels
}

// FamilyVocabulary covers English and Indonesian words for each family.
var FamilyVocabulary = []Entry{
	{"fresh", []string{"fresh", "segar", "bersih", "light", "ringan", "citrus"}},
	{"floral", []string{"floral", "bunga", "feminine", "romantic", "melati", "rose"}},
	{"fruity", []string{"fruity", "buah", "manis buah", "tropical", "sweet fruit"}},
	{"woody", []string{"woody", "kayu", "warm", "hangat", "earthy", "sandalwood"}},
	{"oriental", []string{"oriental", "spicy", "rempah", "eksotis", "mystery", "exotic"}},
	{"gourmand", []string{"gourmand", "manis", "edible", "dessert", "comfort", "vanilla"}},
}

// OccasionVocabulary maps wear occasions.
var OccasionVocabulary = []Entry{
	{"daily", []string{"daily", "everyday", "work", "school", "office", "routine"}},
	{"formal", []string{"formal", "important", "meeting", "business", "professional"}},
	{"evening", []string{"evening", "night", "date", "romantic", "special"}},
	{"casual", []string{"casual", "weekend", "hangout", "relaxed", "fun"}},
	{"party", []string{"party", "celebration", "festival"}},
	{"sport", []string{"sport", "gym", "workout", "outdoor"}},
}

// PersonalityVocabulary maps self-descriptions to traits.
var PersonalityVocabulary = []Entry{
	{"confident", []string{"confident", "bold", "strong", "assertive", "stand out"}},
	{"romantic", []string{"romantic", "gentle", "sweet", "soft", "tender"}},
	{"professional", []string{"professional", "polished", "put-together", "sophisticated", "elegant"}},
	{"playful", []string{"playful", "fun", "energetic", "cheerful", "lively"}},
	{"sophisticated", []string{"mature", "classy", "refined", "cultured"}},
}

// BudgetVocabulary is ordered: the first matching tier wins.
var BudgetVocabulary = []Entry{
	{"budget", []string{"100k", "under", "budget", "affordable", "cheap"}},
	{"moderate", []string{"300k", "mid", "middle", "moderate", "reasonable"}},
	{"premium", []string{"500k", "quality", "invest", "premium"}},
	{"luxury", []string{"best", "luxury", "price isn't", "expensive", "high-end"}},
	{"flexible", []string{"flexible", "any price", "doesn't matter"}},
}

// SensitivityVocabulary is ordered: the first matching level wins.
var SensitivityVocabulary = []Entry{
	{"sensitive", []string{"sensitive", "strong scents", "overpowering"}},
	{"allergic", []string{"allergic", "allergy", "floral", "reaction"}},
	{"hypoallergenic", []string{"hypoallergenic", "gentle", "mild", "safe"}},
	{"cautious", []string{"cautious", "careful", "not sure"}},
}
