// Package catalogue loads the locally authored content catalogue from a
// YAML file at startup. The catalogue carries the articles, achievements,
// and services collections in authorial order.
package catalogue

import (
	"fmt"
	"os"
	"time"

	"portfolio-backend/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// itemYAML is the on-disk shape of one catalogue entry.
type itemYAML struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Excerpt     string    `yaml:"excerpt"`
	URL         string    `yaml:"url"`
	ImageURL    string    `yaml:"image_url"`
	Category    string    `yaml:"category"`
	Tags        []string  `yaml:"tags"`
	PublishedAt time.Time `yaml:"published_at"`
	Views       int64     `yaml:"views"`
	Likes       int64     `yaml:"likes"`
}

// fileYAML is the on-disk shape of the whole catalogue.
type fileYAML struct {
	Articles     []itemYAML `yaml:"articles"`
	Achievements []itemYAML `yaml:"achievements"`
	Services     []itemYAML `yaml:"services"`
}

// Catalogue holds the loaded local collections. It is immutable after Load,
// so it is safe for concurrent use.
type Catalogue struct {
	articles     []entity.ContentItem
	achievements []entity.ContentItem
	services     []entity.ContentItem
}

// Load reads and parses the catalogue file. Every entry must carry a title;
// entries are returned in file order.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read catalogue file: %w", err)
	}

	var file fileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalogue file: %w", err)
	}

	c := &Catalogue{}
	if c.articles, err = convert("articles", file.Articles); err != nil {
		return nil, err
	}
	if c.achievements, err = convert("achievements", file.Achievements); err != nil {
		return nil, err
	}
	if c.services, err = convert("services", file.Services); err != nil {
		return nil, err
	}

	return c, nil
}

func convert(section string, in []itemYAML) ([]entity.ContentItem, error) {
	out := make([]entity.ContentItem, 0, len(in))
	for i, item := range in {
		if item.Title == "" {
			return nil, fmt.Errorf("catalogue %s[%d]: title is required", section, i)
		}
		out = append(out, entity.ContentItem{
			ID:          item.ID,
			Title:       item.Title,
			Excerpt:     item.Excerpt,
			URL:         item.URL,
			ImageURL:    item.ImageURL,
			Category:    item.Category,
			Tags:        item.Tags,
			Platform:    entity.PlatformLocal,
			PublishedAt: item.PublishedAt,
			Views:       item.Views,
			Likes:       item.Likes,
		})
	}
	return out, nil
}

// Articles returns the local article collection in authorial order.
func (c *Catalogue) Articles() []entity.ContentItem { return c.articles }

// Achievements returns the achievements collection in authorial order.
func (c *Catalogue) Achievements() []entity.ContentItem { return c.achievements }

// Services returns the services collection in authorial order.
func (c *Catalogue) Services() []entity.ContentItem { return c.services }
