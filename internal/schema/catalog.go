package schema

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Catalog is the on-disk schema snapshot format: one JSON document holding
// every resource and module schema the documents under check may reference.
type Catalog struct {
	Resources map[string]*Schema `json:"resources"`
	Modules   map[string]*Schema `json:"modules"`
}

// LoadCatalog reads catalog files into a single registry. Later files win on
// type-string collisions, matching how the platform layers schema overlays.
func LoadCatalog(paths ...string) (*Registry, error) {
	reg := NewRegistry()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading schema catalog %s", path)
		}
		var cat Catalog
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, errors.Wrapf(err, "parsing schema catalog %s", path)
		}
		for ref, s := range cat.Resources {
			if s.Body == nil {
				return nil, errors.Errorf("schema catalog %s: resource %q has no body", path, ref)
			}
			reg.RegisterResource(ref, s)
		}
		for src, s := range cat.Modules {
			if s.Body == nil {
				return nil, errors.Errorf("schema catalog %s: module %q has no body", path, src)
			}
			reg.RegisterModule(src, s)
		}
	}
	return reg, nil
}
