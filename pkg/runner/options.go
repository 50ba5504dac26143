// Package runner builds trees for many files concurrently.
package runner

// Options controls file discovery and the worker pool.
type Options struct {
	// Paths are the files or directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors exclude globs. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions to pick up, with the
	// leading dot. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories. A pattern is
	// matched against the path relative to WorkingDir and against the base
	// name; "**" crosses directories.
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs caps concurrent workers. 0 or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the Markdown and HTML extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".html", ".htm"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
