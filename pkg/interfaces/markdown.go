package interfaces

// MarkdownRenderer converts Markdown block bodies into HTML fragments.
type MarkdownRenderer interface {
	// Render converts Markdown using the renderer defaults.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown using the supplied overrides.
	RenderWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
