package remote

// Info is a point-in-time snapshot of a repository's metadata. It holds no
// reference to the handle it was taken from.
type Info struct {
	// Path is the absolute directory backing the handle.
	Path string `json:"path" yaml:"path"`

	// OriginURL is the first URL of the origin remote, or empty if the
	// repository has none.
	OriginURL string `json:"origin_url" yaml:"origin_url"`

	// FirstCommit is the hash of the root commit reachable from HEAD. See
	// git.Repository.FirstCommit for how multiple roots are ordered.
	FirstCommit string `json:"first_commit" yaml:"first_commit"`
}
