package types

// LLMBackend identifies the hosted text-generation API.
type LLMBackend string

const (
	// BackendGroq is the OpenAI-compatible chat-completion endpoint.
	BackendGroq LLMBackend = "groq"
	// BackendHuggingFace is the plain inference endpoint.
	BackendHuggingFace LLMBackend = "huggingface"
)

// OutputFormat selects the serialization of the result file.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ExtractorBackend selects the PDF text extraction library.
type ExtractorBackend string

const (
	ExtractorPDF     ExtractorBackend = "pdf"
	ExtractorDocconv ExtractorBackend = "docconv"
)

// AIConfig holds settings for the call to the Generative AI API.
type AIConfig struct {
	// Backend selects the API flavour: groq or huggingface.
	Backend LLMBackend `json:"backend" yaml:"backend"`

	// Model is the model identifier. Empty selects the backend default.
	Model string `json:"model" yaml:"model"`

	// Endpoint overrides the backend's default URL.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// APIKey is the bearer token for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the sampling temperature. Nil means 0.5; zero is a
	// valid setting.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	// MaxTokens caps generated tokens. Zero selects the backend default.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// GenerationConfig holds settings for one question paper generation run.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// PapersDir holds the historical question paper PDFs.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`

	// SyllabusPath is the syllabus PDF. A missing file is not an error.
	SyllabusPath string `json:"syllabus_path" yaml:"syllabus_path"`

	// ThresholdPath is the plain-text file holding the curated percentage.
	ThresholdPath string `json:"threshold_path" yaml:"threshold_path"`

	// OutputPath is where the result is written (default output_paper_api.json).
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format selects json or yaml output.
	Format OutputFormat `json:"format" yaml:"format"`

	// Extractor selects the PDF text backend: pdf or docconv.
	Extractor ExtractorBackend `json:"extractor" yaml:"extractor"`

	// HistoryDB is the SQLite file recording past runs. Empty disables history.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`
}
