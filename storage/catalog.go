package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bikeshare-explorer/models"
)

// Catalog maps each city to the name of its data file.
type Catalog map[models.City]string

// DefaultCatalog returns the built-in city to file mapping.
func DefaultCatalog() Catalog {
	c := Catalog{}
	for _, city := range models.Cities {
		c[city] = city.SourceName()
	}
	return c
}

type catalogFile struct {
	Cities map[string]string `yaml:"cities"`
}

// LoadCatalog reads a YAML file of the form
//
//	cities:
//	  chicago: chicago.csv
//	  new york city: nyc_2017.csv
//
// Entries override the defaults; cities not listed keep their default file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML. Unknown cities are rejected.
func ParseCatalog(data []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := DefaultCatalog()
	for name, file := range f.Cities {
		city, err := models.ParseCity(name)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if file == "" {
			return nil, fmt.Errorf("catalog: empty file name for %q", name)
		}
		c[city] = file
	}
	return c, nil
}

// SourceName returns the file name configured for city.
func (c Catalog) SourceName(city models.City) string {
	return c[city]
}
