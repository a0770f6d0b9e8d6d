package stopwords

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NLTK is the NLTK English stopword corpus
var NLTK = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're",
	"you've", "you'll", "you'd", "your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "she's", "her", "hers", "herself", "it", "it's", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which", "who", "whom", "this",
	"that", "that'll", "these", "those", "am", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "having", "do", "does", "did", "doing",
	"a", "an", "the", "and", "but", "if", "or", "because", "as", "until",
	"while", "of", "at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below", "to", "from", "up", "down",
	"in", "out", "on", "off", "over", "under", "again", "further", "then", "once",
	"here", "there", "when", "where", "why", "how", "all", "any", "both", "each",
	"few", "more", "most", "other", "some", "such", "no", "nor", "not", "only",
	"own", "same", "so", "than", "too", "very", "s", "t", "can", "will",
	"just", "don", "don't", "should", "should've", "now", "d", "ll", "m", "o",
	"re", "ve", "y", "ain", "aren", "aren't", "couldn", "couldn't", "didn", "didn't",
	"doesn", "doesn't", "hadn", "hadn't", "hasn", "hasn't", "haven", "haven't", "isn", "isn't",
	"ma", "mightn", "mightn't", "mustn", "mustn't", "needn", "needn't", "shan", "shan't", "shouldn",
	"shouldn't", "wasn", "wasn't", "weren", "weren't", "won", "won't", "wouldn", "wouldn't",
}

// SpaCy is the spaCy English stopword set
var SpaCy = []string{
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
	"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "amount",
	"an", "and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
	"around", "as", "at", "back", "be", "became", "because", "become", "becomes", "becoming",
	"been", "before", "beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond",
	"both", "bottom", "but", "by", "call", "can", "cannot", "ca", "could", "did",
	"do", "does", "doing", "done", "down", "due", "during", "each", "eight", "either",
	"eleven", "else", "elsewhere", "empty", "enough", "even", "ever", "every", "everyone", "everything",
	"everywhere", "except", "few", "fifteen", "fifty", "first", "five", "for", "former", "formerly",
	"forty", "four", "from", "front", "full", "further", "get", "give", "go", "had",
	"has", "have", "he", "hence", "her", "here", "hereafter", "hereby", "herein", "hereupon",
	"hers", "herself", "him", "himself", "his", "how", "however", "hundred", "i", "if",
	"in", "indeed", "into", "is", "it", "its", "itself", "keep", "last", "latter",
	"latterly", "least", "less", "just", "made", "make", "many", "may", "me", "meanwhile",
	"might", "mine", "more", "moreover", "most", "mostly", "move", "much", "must", "my",
	"myself", "name", "namely", "neither", "never", "nevertheless", "next", "nine", "no", "nobody",
	"none", "noone", "nor", "not", "nothing", "now", "nowhere", "of", "off", "often",
	"on", "once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
	"ours", "ourselves", "out", "over", "own", "part", "per", "perhaps", "please", "put",
	"quite", "rather", "re", "really", "regarding", "same", "say", "see", "seem", "seemed",
	"seeming", "seems", "serious", "several", "she", "should", "show", "side", "since", "six",
	"sixty", "so", "some", "somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still",
	"such", "take", "ten", "than", "that", "the", "their", "them", "themselves", "then",
	"thence", "there", "thereafter", "thereby", "therefore", "therein", "thereupon", "these", "they", "third",
	"this", "those", "though", "three", "through", "throughout", "thru", "thus", "to", "together",
	"too", "top", "toward", "towards", "twelve", "twenty", "two", "under", "until", "up",
	"unless", "upon", "us", "used", "using", "various", "very", "via", "was", "we",
	"well", "were", "what", "whatever", "when", "whence", "whenever", "where", "whereafter", "whereas",
	"whereby", "wherein", "whereupon", "wherever", "whether", "which", "while", "whither", "who", "whoever",
	"whole", "whom", "whose", "why", "will", "with", "within", "without", "would", "yet",
	"you", "your", "yours", "yourself", "yourselves",
	"n't", "'d", "'ll", "'m", "'re", "'s", "'ve",
	"n‘t", "‘d", "‘ll", "‘m", "‘re", "‘s", "‘ve",
	"n’t", "’d", "’ll", "’m", "’re", "’s", "’ve",
}

// Set is a lookup set of lowercase stopwords
type Set map[string]struct{}

// NewSet builds the union of the given lists
func NewSet(lists ...[]string) Set {
	s := make(Set)
	for _, list := range lists {
		for _, w := range list {
			s.Add(w)
		}
	}
	return s
}

// Add inserts a word, lowercased
func (s Set) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		s[word] = struct{}{}
	}
}

// Contains reports whether word is a stopword
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Options selects which lists make up a Set
type Options struct {
	NLTK      bool
	SpaCy     bool
	ExtraFile string
}

// Build assembles the stopword set described by opts
func Build(opts Options) (Set, error) {
	s := make(Set)
	if opts.NLTK {
		for _, w := range NLTK {
			s.Add(w)
		}
	}
	if opts.SpaCy {
		for _, w := range SpaCy {
			s.Add(w)
		}
	}
	if opts.ExtraFile != "" {
		extra, err := LoadFile(opts.ExtraFile)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, w := range extra {
			s.Add(w)
		}
	}
	return s, nil
}

// stoplist is the YAML layout of an extra stopword file
type stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadFile reads stopwords from a YAML file of the form `terms: [...]`
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sl.Terms, nil
}
