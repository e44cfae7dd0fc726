package markov

const (
	// DefaultOrder is the number of preceding words that form a state.
	DefaultOrder = 2
	// DefaultMaxWords is the default upper bound on generated length.
	DefaultMaxWords = 20
	// DefaultMinWords is the default number of words before a terminator may end generation.
	DefaultMinWords = 1
	// DefaultIterations is the default number of independent generations per batch.
	DefaultIterations = 1
	// MaxRetries is the number of full generation attempts made when a
	// terminator is required but not reached.
	MaxRetries = 10
)

// TrainingOptions configures how raw texts are normalized and folded into
// the transition table. They are fixed once NewChain starts training.
type TrainingOptions struct {
	// Order is the number of words in a state. Must be at least 1.
	Order int `yaml:"order" json:"order"`
	// Path is the corpus location. It is carried for the caller's benefit;
	// the chain itself never reads it.
	Path string `yaml:"texts" json:"path,omitempty"`
	// RemoveURLs drops tokens starting with http://, https:// or www.
	RemoveURLs bool `yaml:"remove_urls" json:"remove_urls"`
	// RemovePunctuation strips all ASCII punctuation from every token.
	RemovePunctuation bool `yaml:"remove_punctuation" json:"remove_punctuation"`
	// AddPunctuation, when non-empty, is appended to the last word of each
	// text that does not already end in punctuation.
	AddPunctuation string `yaml:"add_punctuation" json:"add_punctuation,omitempty"`
}

// DefaultTrainingOptions returns TrainingOptions with the default order and
// no normalization beyond lowercasing.
func DefaultTrainingOptions() TrainingOptions {
	return TrainingOptions{Order: DefaultOrder}
}

// tokenizer builds the tokenizer that applies these options.
func (o TrainingOptions) tokenizer() *WhitespaceTokenizer {
	return NewWhitespaceTokenizer(
		WithRemoveURLs(o.RemoveURLs),
		WithRemovePunctuation(o.RemovePunctuation),
		WithAddPunctuation(o.AddPunctuation),
	)
}

// GenerationOptions controls a single generation or a batch of them.
type GenerationOptions struct {
	// Seed is an optional starting word. Empty means a random start.
	Seed string `json:"seed,omitempty"`
	// Terminator, when non-empty, must end a generated word for an attempt
	// to succeed.
	Terminator string `json:"terminator,omitempty"`
	// MaxWords bounds the length of the generated sequence, seed state included.
	MaxWords int `json:"max_words"`
	// MinWords is the length the sequence must reach before the terminator
	// is honored.
	MinWords int `json:"min_words"`
	// Iterations is the number of independent generations in a batch.
	Iterations int `json:"iterations"`
}

// GenerateOption is a function that configures GenerationOptions.
type GenerateOption func(*GenerationOptions)

// WithSeed sets the starting word.
func WithSeed(seed string) GenerateOption {
	return func(o *GenerationOptions) { o.Seed = seed }
}

// WithTerminator sets the string a word must end with to stop generation.
func WithTerminator(terminator string) GenerateOption {
	return func(o *GenerationOptions) { o.Terminator = terminator }
}

// WithMaxWords sets the maximum number of words in the result.
func WithMaxWords(n int) GenerateOption {
	return func(o *GenerationOptions) { o.MaxWords = n }
}

// WithMinWords sets how many words must be produced before the terminator counts.
func WithMinWords(n int) GenerateOption {
	return func(o *GenerationOptions) { o.MinWords = n }
}

// WithIterations sets the number of generations GenerateBatch produces.
func WithIterations(n int) GenerateOption {
	return func(o *GenerationOptions) { o.Iterations = n }
}

// NewGenerationOptions returns the default options with opts applied.
func NewGenerationOptions(opts ...GenerateOption) GenerationOptions {
	o := GenerationOptions{
		MaxWords:   DefaultMaxWords,
		MinWords:   DefaultMinWords,
		Iterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate checks the options for configuration errors. It returns
// ErrMaxMinWords if MaxWords is below MinWords.
func (o GenerationOptions) Validate() error {
	if o.MaxWords < o.MinWords {
		return ErrMaxMinWords
	}
	return nil
}
