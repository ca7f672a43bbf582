package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/impactgrid/impactgrid/assets"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ImageRoot prefixes every image path handed to the rendering surface.
const ImageRoot = "assets/images"

// Catalog holds the per-category constants: costs, capacities and image variants.
type Catalog struct {
	Environmental EnvironmentalDef `yaml:"environmental" json:"environmental"`
	Animal        AnimalDef        `yaml:"animal" json:"animal"`
	Education     EducationDef     `yaml:"education" json:"education"`
}

// EnvironmentalDef describes tree planting. GrowthImages[stage] lists the
// variants that may be drawn for that stage; the last index is the max stage.
type EnvironmentalDef struct {
	ItemCost     int        `yaml:"item_cost" json:"item_cost"`
	Folder       string     `yaml:"folder" json:"folder"`
	GrowthImages [][]string `yaml:"growth_images" json:"growth_images"`
}

// MaxStage is the final growth stage (2 with the default catalog).
func (d EnvironmentalDef) MaxStage() int { return len(d.GrowthImages) - 1 }

// AnimalDef describes shelters and the animals rescued into them.
type AnimalDef struct {
	ItemCost        int      `yaml:"item_cost" json:"item_cost"`
	Folder          string   `yaml:"folder" json:"folder"`
	ShelterImage    string   `yaml:"shelter_image" json:"shelter_image"`
	ShelterCapacity int      `yaml:"shelter_capacity" json:"shelter_capacity"`
	AnimalImages    []string `yaml:"animal_images" json:"animal_images"`
}

// EducationDef describes school construction and enrollment.
// BuildingImages[stage] is drawn for each construction stage.
type EducationDef struct {
	ItemCost        int      `yaml:"item_cost" json:"item_cost"`
	Folder          string   `yaml:"folder" json:"folder"`
	BuildingImages  []string `yaml:"building_images" json:"building_images"`
	StudentCapacity int      `yaml:"student_capacity" json:"student_capacity"`
	StudentImages   []string `yaml:"student_images" json:"student_images"`
}

// MaxStage is the completed-school stage (3 with the default catalog).
func (d EducationDef) MaxStage() int { return len(d.BuildingImages) - 1 }

// ItemCost returns the price of one placement for a category, or 0 if unknown.
func (c *Catalog) ItemCost(cat Category) int {
	switch cat {
	case CategoryEnvironmental:
		return c.Environmental.ItemCost
	case CategoryAnimal:
		return c.Animal.ItemCost
	case CategoryEducation:
		return c.Education.ItemCost
	default:
		return 0
	}
}

// Folder returns the image folder for a category.
func (c *Catalog) Folder(cat Category) string {
	switch cat {
	case CategoryEnvironmental:
		return c.Environmental.Folder
	case CategoryAnimal:
		return c.Animal.Folder
	case CategoryEducation:
		return c.Education.Folder
	default:
		return ""
	}
}

// Image builds the reference for a file in a category's folder.
func (c *Catalog) Image(cat Category, file, alt string) ImageRef {
	return ImageRef{
		Path: path.Join(ImageRoot, c.Folder(cat), file),
		Alt:  alt,
	}
}

// DefaultCatalog parses the embedded catalog. It panics if the embedded
// document is invalid, which only a broken build can cause.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(assets.Catalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadCatalogFile reads and validates a catalog from disk.
func LoadCatalogFile(p string) (*Catalog, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return LoadCatalog(raw)
}

// LoadCatalog parses a YAML catalog and validates it against the embedded schema.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateCatalog(doc); err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// validateCatalog round-trips the YAML tree through JSON so the schema sees
// plain JSON values.
func validateCatalog(doc any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.schema.json", bytes.NewReader(assets.CatalogSchema)); err != nil {
		return fmt.Errorf("load catalog schema: %w", err)
	}
	schema, err := compiler.Compile("catalog.schema.json")
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}
