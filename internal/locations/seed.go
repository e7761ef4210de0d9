package locations

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"horse_portal_backend/internal/contentstore"
)

// SeedFile is the YAML layout accepted by the location seeder.
type SeedFile struct {
	Countries []SeedCountry `yaml:"countries"`
}

// SeedCountry is one country with its governorates.
type SeedCountry struct {
	NameEn       string            `yaml:"name_en"`
	NameAr       string            `yaml:"name_ar"`
	Governorates []SeedGovernorate `yaml:"governorates"`
}

// SeedGovernorate is one governorate with its cities.
type SeedGovernorate struct {
	NameEn string     `yaml:"name_en"`
	NameAr string     `yaml:"name_ar"`
	Cities []SeedCity `yaml:"cities"`
}

// SeedCity is one city.
type SeedCity struct {
	NameEn string `yaml:"name_en"`
	NameAr string `yaml:"name_ar"`
}

// SeedResult counts the documents created by Seed.
type SeedResult struct {
	Countries    int
	Governorates int
	Cities       int
}

// ParseSeed decodes and checks a seed file.
func ParseSeed(r io.Reader) (SeedFile, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return SeedFile{}, fmt.Errorf("decode seed file: %w", err)
	}
	for _, c := range file.Countries {
		if strings.TrimSpace(c.NameEn) == "" {
			return SeedFile{}, fmt.Errorf("country without name_en")
		}
		for _, g := range c.Governorates {
			if strings.TrimSpace(g.NameEn) == "" {
				return SeedFile{}, fmt.Errorf("governorate without name_en in %s", c.NameEn)
			}
			for _, city := range g.Cities {
				if strings.TrimSpace(city.NameEn) == "" {
					return SeedFile{}, fmt.Errorf("city without name_en in %s", g.NameEn)
				}
			}
		}
	}
	return file, nil
}

// Seed writes file into store. Entries that already exist under the same
// parent and English name are reused, so running it twice creates nothing new.
func Seed(ctx context.Context, store contentstore.Store, file SeedFile) (SeedResult, error) {
	var res SeedResult
	for _, c := range file.Countries {
		countryID, created, err := ensure(ctx, store, contentstore.TypeCountry, "", "", c.NameEn, c.NameAr)
		if err != nil {
			return res, err
		}
		if created {
			res.Countries++
		}
		for _, g := range c.Governorates {
			govID, created, err := ensure(ctx, store, contentstore.TypeGovernorate, "country", countryID, g.NameEn, g.NameAr)
			if err != nil {
				return res, err
			}
			if created {
				res.Governorates++
			}
			for _, city := range g.Cities {
				_, created, err := ensure(ctx, store, contentstore.TypeCity, "governorate", govID, city.NameEn, city.NameAr)
				if err != nil {
					return res, err
				}
				if created {
					res.Cities++
				}
			}
		}
	}
	return res, nil
}

func ensure(ctx context.Context, store contentstore.Store, docType, parentField, parentID, nameEn, nameAr string) (string, bool, error) {
	filters := []contentstore.Filter{contentstore.Eq("name_en", nameEn)}
	if parentField != "" {
		filters = append(filters, contentstore.Eq(parentField+"._ref", parentID))
	}
	existing, err := store.Fetch(ctx, contentstore.Query{Type: docType, Filters: filters, Limit: 1})
	if err != nil {
		return "", false, fmt.Errorf("lookup %s %q: %w", docType, nameEn, err)
	}
	if len(existing) > 0 {
		return existing[0].ID.String(), false, nil
	}

	body := map[string]any{"name_en": nameEn, "name_ar": nameAr}
	if parentField != "" {
		body[parentField] = contentstore.Ref(parentID)
	}
	doc, err := store.Create(ctx, docType, nil, body)
	if err != nil {
		return "", false, fmt.Errorf("create %s %q: %w", docType, nameEn, err)
	}
	return doc.ID.String(), true, nil
}
