package llm

// DefaultModel is used when no model is configured.
const DefaultModel = "codellama/CodeLlama-7b-hf"

// Fallbacks for models missing from the catalog.
const (
	DefaultTemperature = 0.7
	DefaultMaxLength   = 2048
)

// Models is the hosted model catalog offered by the dashboard.
var Models = []ModelInfo{
	{
		ID:          "codellama/CodeLlama-7b-hf",
		DisplayName: "Code Llama 7B",
		Description: "Good for general code improvements",
		Recommended: true,
		Temperature: 0.7,
		MaxLength:   2048,
	},
	{
		ID:          "bigcode/starcoder",
		DisplayName: "StarCoder",
		Description: "Specialized for JavaScript and web development",
		Temperature: 0.8,
		MaxLength:   1024,
	},
	{
		ID:          "google/gemma-2b",
		DisplayName: "Gemma 2B",
		Description: "Lightweight and fast",
		Temperature: 0.9,
		MaxLength:   512,
	},
}

// LookupModel returns the entry for id in models. Unknown models get the
// default temperature and max length.
func LookupModel(models []ModelInfo, id string) ModelInfo {
	for _, m := range models {
		if m.ID == id {
			return m
		}
	}
	return ModelInfo{ID: id, DisplayName: id, Temperature: DefaultTemperature, MaxLength: DefaultMaxLength}
}

// BuildRequest fills generation parameters from cfg, falling back to the
// provider's default model and its catalog entry.
func BuildRequest(cfg Config, info ProviderInfo, prompt string) Request {
	model := cfg.Model
	if model == "" {
		model = info.DefaultModel
	}
	if model == "" {
		model = DefaultModel
	}
	entry := LookupModel(info.Models, model)

	req := Request{
		Model:        model,
		Prompt:       prompt,
		Temperature:  entry.Temperature,
		MaxNewTokens: entry.MaxLength,
	}
	if cfg.Temperature > 0 {
		req.Temperature = cfg.Temperature
	}
	if cfg.MaxTokens > 0 {
		req.MaxNewTokens = cfg.MaxTokens
	}
	return req
}
