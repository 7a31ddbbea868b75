package flex

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// definitionFile is the YAML layout read by LoadDefinitions:
//
//	flexes:
//	  - name: Sh
//	    input: [[1,2],3,4,5]
//	    output: [1,2,3,[4,5]]
//	    rotation: ABC
type definitionFile struct {
	Flexes []Definition `yaml:"flexes"`
}

// LoadDefinitions reads YAML flex definitions and returns them, with their
// inverses, as a catalog.
func LoadDefinitions(r io.Reader) (Catalog, error) {
	var file definitionFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("flex: decode definitions: %w", err)
	}
	cat := make(Catalog, 2*len(file.Flexes))
	for _, d := range file.Flexes {
		f, err := FromDefinition(d)
		if err != nil {
			return nil, err
		}
		cat.Add(f)
	}
	return cat, nil
}

// Merge adds every flex from other, replacing same-named entries.
func (c Catalog) Merge(other Catalog) {
	for k, v := range other {
		c[k] = v
	}
}

// MarshalDefinitions writes the named flexes of c as YAML.
func (c Catalog) MarshalDefinitions(w io.Writer, names ...string) error {
	var file definitionFile
	for _, n := range names {
		f, err := c.Get(n)
		if err != nil {
			return err
		}
		file.Flexes = append(file.Flexes, f.Definition())
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return err
	}
	return enc.Close()
}
