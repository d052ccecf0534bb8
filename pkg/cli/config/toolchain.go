package config

import "github.com/urfave/cli/v3"

// Toolchain holds Python toolchain configuration
type Toolchain struct {
	Python string
	Tools  []string
}

// Flags returns CLI flags for toolchain configuration
func (c *Toolchain) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "python",
			Usage:       "Python interpreter to use (probes python3/python when unset)",
			Destination: &c.Python,
			Sources:     cli.EnvVars("COURIER_PYTHON"),
		},
		&cli.StringSliceFlag{
			Name:        "packaging-tool",
			Usage:       "Packaging tool spec installed before the build; repeat to pin versions (e.g. build==1.2.2)",
			Value:       []string{"pip", "build", "twine"},
			Destination: &c.Tools,
			Sources:     cli.EnvVars("COURIER_PACKAGING_TOOLS"),
		},
	}
}
