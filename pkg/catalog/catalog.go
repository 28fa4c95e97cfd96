// Package catalog holds the built-in sample collections and feature templates.
package catalog

import (
	_ "embed"
	"fmt"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/pkg/prioritization"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Template is a named starter set of RICE features.
type Template struct {
	Key      string                     `yaml:"key" json:"key"`
	Name     string                     `yaml:"name" json:"name"`
	Features []prioritization.RiceDraft `yaml:"features" json:"features"`
}

type Catalog struct {
	SampleSets struct {
		Rice   []prioritization.RiceDraft   `yaml:"rice"`
		Moscow []prioritization.MoscowDraft `yaml:"moscow"`
	} `yaml:"samples"`
	Templates []Template `yaml:"templates"`
}

// Parse reads a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Samples returns the sample drafts for framework.
func (c *Catalog) Samples(framework entity.Framework) ([]prioritization.Draft, error) {
	var drafts []prioritization.Draft
	switch framework {
	case entity.FrameworkRice:
		for _, d := range c.SampleSets.Rice {
			drafts = append(drafts, d)
		}
	case entity.FrameworkMoscow:
		for _, d := range c.SampleSets.Moscow {
			drafts = append(drafts, d)
		}
	default:
		return nil, prioritization.ErrUnknownFramework
	}
	return drafts, nil
}

// Template looks a template up by key.
func (c *Catalog) Template(key string) (Template, bool) {
	for _, t := range c.Templates {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}

// Drafts returns the template features as generic drafts.
func (t Template) Drafts() []prioritization.Draft {
	drafts := make([]prioritization.Draft, 0, len(t.Features))
	for _, d := range t.Features {
		drafts = append(drafts, d)
	}
	return drafts
}
