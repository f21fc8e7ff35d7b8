package phrase

// DefaultStopWords is the built-in English stopword list used when no
// custom list is configured.
var DefaultStopWords = []string{
	"a", "above", "after", "against", "among", "an", "and", "are", "at",
	"be", "been", "before", "being", "below", "between", "but", "by",
	"could", "did", "do", "does", "during", "each", "first", "for",
	"from", "had", "has", "have", "in", "into", "is", "may", "might",
	"more", "most", "must", "of", "on", "or", "other", "over", "said",
	"should", "some", "than", "that", "the", "their", "there", "they",
	"this", "through", "time", "to", "very", "was", "were", "what",
	"when", "where", "which", "will", "with", "within", "without",
	"would",
}

// DefaultEntityLabels is the set of entity labels accepted as keyword
// candidates: people, organizations, places, products, events, works of
// art, laws and national/religious/political groups.
var DefaultEntityLabels = []string{
	"person", "organization", "location", "place", "product", "event",
	"work_of_art", "law", "group",
}
