package enums

// SourceLocation tells whether a media entry came from the requested
// post itself or from a post quoted inside it.
type SourceLocation string

const (
	SourceLocationOriginal SourceLocation = "original"
	SourceLocationQuoted   SourceLocation = "quoted"
)
