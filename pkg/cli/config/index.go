package config

import (
	"github.com/urfave/cli/v3"

	"github.com/pkgship/courier/pkg/domain/model"
)

// Index holds package index configuration. The default endpoint is the test
// index; publishing to a production index requires setting the URL
// explicitly.
type Index struct {
	URL   string
	Token string `masq:"secret"`
}

// Flags returns CLI flags for index configuration
func (c *Index) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "index-url",
			Usage:       "Package index upload endpoint",
			Value:       model.DefaultIndexURL,
			Destination: &c.URL,
			Sources:     cli.EnvVars("COURIER_INDEX_URL"),
		},
		&cli.StringFlag{
			Name:        "index-token",
			Usage:       "Package index API token (an empty token fails at the upload step)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COURIER_INDEX_TOKEN"),
		},
	}
}

// Target builds the upload target with the username sentinel applied.
func (c *Index) Target() *model.IndexTarget {
	return model.NewIndexTarget(c.URL, c.Token)
}
