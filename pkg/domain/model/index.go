package model

// UsernameToken is the fixed username sentinel for token-based index
// authentication.
const UsernameToken = "__token__"

// DefaultIndexURL is the test package index, the literal endpoint of the
// original workflow. Production uploads require explicit configuration.
const DefaultIndexURL = "https://test.pypi.org/legacy/"

// IndexTarget is the package index the upload step publishes to.
type IndexTarget struct {
	URL      string
	Username string
	Token    string `masq:"secret"`
}

// NewIndexTarget builds a target with the username sentinel and default
// endpoint applied.
func NewIndexTarget(url, token string) *IndexTarget {
	if url == "" {
		url = DefaultIndexURL
	}
	return &IndexTarget{
		URL:      url,
		Username: UsernameToken,
		Token:    token,
	}
}
