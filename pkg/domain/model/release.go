package model

// Source identifies the repository contents the checkout step acquires.
type Source struct {
	Owner     string // Repository owner
	Repo      string // Repository name
	CommitSHA string // Commit SHA the triggering tag points to
}

// ReleaseRequest describes what the publish pipeline runs on. Exactly one of
// Source (webhook-triggered runs) or LocalDir (one-shot local runs) is set.
type ReleaseRequest struct {
	Tag      *ReleaseTag
	Source   *Source
	LocalDir string
}

// Checkout represents the working copy produced by the checkout step
type Checkout struct {
	Root      string   // Extraction root, removed after transient runs
	Dir       string   // Working tree root (zipballs nest under "<repo>-<sha>/")
	Files     []string // List of extracted files (empty for local runs)
	Size      int64    // Total size in bytes
	Transient bool     // Directory is removed after the run
}
