package glm

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// netcdfDataset adapts a go-native-netcdf group to Dataset
type netcdfDataset struct {
	group api.Group
}

// Open opens a netCDF file read-only
func Open(path string) (Dataset, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open netCDF file %s: %w", path, err)
	}
	return &netcdfDataset{group: group}, nil
}

func (ds *netcdfDataset) Attributes() map[string]interface{} {
	return attributeMap(ds.group.Attributes())
}

func (ds *netcdfDataset) Dimensions() []Dimension {
	names := ds.group.ListDimensions()
	dims := make([]Dimension, 0, len(names))
	for _, name := range names {
		size, ok := ds.group.GetDimension(name)
		if !ok {
			continue
		}
		dims = append(dims, Dimension{Name: name, Size: int(size)})
	}
	return dims
}

func (ds *netcdfDataset) VariableNames() []string {
	return ds.group.ListVariables()
}

func (ds *netcdfDataset) Variable(name string) (*Variable, error) {
	if !HasVariable(ds, name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingVariable, name)
	}
	getter, err := ds.group.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("could not read variable %s: %w", name, err)
	}

	v := &Variable{
		Name:       name,
		Type:       getter.Type(),
		Dimensions: getter.Dimensions(),
		Attributes: attributeMap(getter.Attributes()),
	}
	// Zero-length arrays carry no data to read
	if len(v.Dimensions) > 0 && getter.Len() == 0 {
		return v, nil
	}
	if v.Values, err = getter.Values(); err != nil {
		return nil, fmt.Errorf("could not read values of %s: %w", name, err)
	}
	return v, nil
}

func (ds *netcdfDataset) Close() error {
	ds.group.Close()
	return nil
}

func attributeMap(attrs api.AttributeMap) map[string]interface{} {
	out := map[string]interface{}{}
	if attrs == nil {
		return out
	}
	for _, key := range attrs.Keys() {
		if value, ok := attrs.Get(key); ok {
			out[key] = value
		}
	}
	return out
}
