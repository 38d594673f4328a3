package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/engine"
	"github.com/josoor-lab/sectorlens/pkg/utils/logging"
)

// Classifier holds the CLI flag for policy tool category overrides
type Classifier struct {
	path string
}

// classifierFile is the TOML layout of a category override file
type classifierFile struct {
	Overrides []categoryOverride `toml:"override"`
}

// categoryOverride reassigns one policy tool display name to a category
type categoryOverride struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// Validate checks if the categoryOverride is valid
func (o *categoryOverride) Validate() error {
	if o.Name == "" {
		return goerr.New("override name is required")
	}
	if _, err := types.ParsePolicyCategory(o.Category); err != nil {
		return goerr.Wrap(err, "invalid override category", goerr.V("name", o.Name))
	}
	return nil
}

// Flags returns CLI flags for classifier configuration
func (c *Classifier) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "category-overrides",
			Usage:       "TOML file reassigning policy tool names to categories",
			Sources:     cli.EnvVars("SECTORLENS_CATEGORY_OVERRIDES"),
			Destination: &c.path,
		},
	}
}

// Configure builds a classifier, applying the override file when one is
// configured.
func (c *Classifier) Configure() (*engine.Classifier, error) {
	if c.path == "" {
		return engine.NewClassifier(nil), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read category override file", goerr.V("path", c.path))
	}

	var file classifierFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse category override file", goerr.V("path", c.path))
	}

	overrides := make(map[string]types.PolicyCategory, len(file.Overrides))
	for _, o := range file.Overrides {
		if err := o.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid category override", goerr.V("path", c.path))
		}
		if _, ok := overrides[o.Name]; ok {
			return nil, goerr.New("duplicate override name", goerr.V("name", o.Name), goerr.V("path", c.path))
		}
		cat, _ := types.ParsePolicyCategory(o.Category)
		overrides[o.Name] = cat
	}

	logging.Default().Info("Loaded category overrides", "path", c.path, "count", len(overrides))
	return engine.NewClassifier(overrides), nil
}
