package stac

import (
	"github.com/venicegeo/goes-glm-stac/glm"
	"github.com/venicegeo/goes-glm-stac/model"
)

// NetCDFAsset creates the asset of the source netCDF file. Without href it
// is an item asset definition.
func NetCDFAsset(href string) *model.Asset {
	return model.NewAsset(href, model.NetCDFTitle, model.NetCDFMediaType, model.NetCDFRoles)
}

// describeNetCDF creates the netCDF asset of an item, with datacube fields
func describeNetCDF(ds glm.Dataset, href, created string) (*model.Asset, error) {
	variables, err := glm.CubeVariables(ds)
	if err != nil {
		return nil, err
	}
	asset := NetCDFAsset(href)
	if created != "" {
		asset.Set("created", created)
	}
	asset.Set("cube:dimensions", glm.CubeDimensions(ds))
	asset.Set("cube:variables", variables)
	return asset, nil
}
