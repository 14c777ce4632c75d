package repository

import (
	"context"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const maxPrice = math.MaxInt32

type YAMLRepository struct {
	path string
}

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

type yamlCatalog struct {
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	Name        *string   `yaml:"name"`
	Price       yaml.Node `yaml:"price"`
	Hashtags    []string  `yaml:"hashtags"`
	Description string    `yaml:"description"`
}

func (r *YAMLRepository) LoadItems(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", r.path)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a catalog document with a top level "items" list.
func ParseYAML(data []byte) ([]domain.Item, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}

	items := make([]domain.Item, 0, len(doc.Items))
	for i, raw := range doc.Items {
		if raw.Name == nil {
			return nil, errors.Wrapf(domain.ErrInvalidCatalog, "item %d: missing name", i)
		}
		price, err := parsePrice(raw.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d (%s)", i, *raw.Name)
		}
		item, err := domain.NewItem(*raw.Name, price, raw.Hashtags, raw.Description)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d (%s)", i, *raw.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

// parsePrice accepts integers, integral floats and numeric strings.
// Fractional prices are rejected rather than truncated.
func parsePrice(node yaml.Node) (int, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, errors.Wrap(domain.ErrInvalidCatalog, "missing price")
	}

	value := strings.TrimSpace(node.Value)
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(domain.ErrInvalidCatalog, "price %q is not an integer", node.Value)
	}
	if f < 0 {
		return 0, domain.ErrNegativePrice
	}
	if f > maxPrice {
		return 0, errors.Wrapf(domain.ErrInvalidCatalog, "price %q out of range", node.Value)
	}
	return int(f), nil
}

func (r *YAMLRepository) Close() error {
	return nil
}
