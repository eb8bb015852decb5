// Package rules owns the table mapping array names to the size rule
// that fixes their extent within a dump record. The table is an
// explicit registry value rather than package state, so extending it
// never touches decode logic.
package rules

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/heliosim/ppf-tool/internal/types"
)

// Registry maps array names to size classes. The zero value is not
// usable; construct one with Builtin or New.
type Registry struct {
	classes map[string]types.SizeClass
}

// Builtin returns a registry preloaded with every quantity the ppf
// format is known to emit.
func Builtin() *Registry {
	return &Registry{classes: map[string]types.SizeClass{
		// zone-boundary quantities
		"R": types.SizeZoneBoundary, // boundary radius
		"U": types.SizeZoneBoundary, // boundary velocity

		// zone-centered quantities
		"RCM":    types.SizeZone, // zone-center radius
		"PRES":   types.SizeZone, // pressure
		"RHO":    types.SizeZone, // density
		"TE":     types.SizeZone, // electron temperature
		"TI":     types.SizeZone, // ion temperature
		"TR":     types.SizeZone, // radiation temperature
		"QTOT":   types.SizeZone, // total heat flux
		"ZBAR":   types.SizeZone, // mean ionization
		"STRTOT": types.SizeZone, // total stress
		"IREG":   types.SizeZone, // region index of each zone

		// per-region quantities
		"REGMAS": types.SizeRegion, // region mass

		// scalars
		"ELASER": types.SizeScalar, // cumulative laser energy

		// photon-group quantities
		"PHGRPBND": types.SizePhotonGroupBoundary, // group boundary energies
		"PHGRPCEN": types.SizePhotonGroup,         // group center energies
	}}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{classes: make(map[string]types.SizeClass)}
}

// Register adds or replaces the size class for name.
func (r *Registry) Register(name string, class types.SizeClass) {
	r.classes[name] = class
}

// Class returns the size class registered for name.
func (r *Registry) Class(name string) (types.SizeClass, error) {
	class, ok := r.classes[name]
	if !ok {
		return 0, &types.UnknownArrayError{Name: name}
	}
	return class, nil
}

// Names returns every registered array name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extent resolves the number of values name occupies in one dump
// record of the problem described by meta.
func (r *Registry) Extent(name string, meta *types.ProblemMetadata) (int, error) {
	class, err := r.Class(name)
	if err != nil {
		return 0, err
	}
	switch class {
	case types.SizeZone:
		return meta.ZoneCount, nil
	case types.SizeZoneBoundary:
		return meta.ZoneCount + 1, nil
	case types.SizeRegion:
		return meta.RegionCount(), nil
	case types.SizePhotonGroup:
		if meta.GroupCount <= 0 {
			return 0, &types.UnresolvedArraySizeError{Name: name, Class: class}
		}
		return meta.GroupCount, nil
	case types.SizePhotonGroupBoundary:
		if meta.GroupCount <= 0 {
			return 0, &types.UnresolvedArraySizeError{Name: name, Class: class}
		}
		return meta.GroupCount + 1, nil
	case types.SizeScalar:
		return 1, nil
	default:
		return 0, fmt.Errorf("array %q: unhandled size class %d", name, class)
	}
}

// yaml class names accepted by LoadFile.
var classNames = map[string]types.SizeClass{
	"zone":                  types.SizeZone,
	"zone-boundary":         types.SizeZoneBoundary,
	"region":                types.SizeRegion,
	"photon-group":          types.SizePhotonGroup,
	"photon-group-boundary": types.SizePhotonGroupBoundary,
	"scalar":                types.SizeScalar,
}

// LoadFile merges name→class entries from a YAML file into the
// registry. Entries replace existing rules for the same name, so a
// site file can both add new quantities and correct built-ins.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Load(data)
}

// Load merges name→class entries from YAML data into the registry.
func (r *Registry) Load(data []byte) error {
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse size-rule table: %w", err)
	}
	for name, className := range entries {
		class, ok := classNames[className]
		if !ok {
			return fmt.Errorf("size-rule table: array %q: unknown size class %q", name, className)
		}
		r.classes[name] = class
	}
	return nil
}
