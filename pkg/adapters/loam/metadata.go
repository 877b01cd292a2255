package loam

// SourceMetadata is the frontmatter of a model document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
// There is no ID key; the file path names the model.
type SourceMetadata struct {
	Title string `json:"title,omitempty" mapstructure:"title"`

	// Toeholds are emitted as a "toehold" declaration ahead of the body.
	Toeholds []string `json:"toeholds,omitempty" mapstructure:"toeholds"`
}
