package model

// BasicGLMItem holds the fields common to every GLM item
type BasicGLMItem struct {
	ID          string
	OrbitalSlot OrbitalSlot
	Collection  string
}

// STACItem implements the ItemCreator interface
func (bi BasicGLMItem) STACItem() (*Item, error) {
	item := NewItem(bi.ID)
	item.Geometry = bi.OrbitalSlot.Geometry()
	item.Bbox = bi.OrbitalSlot.BoundingBox()
	item.Collection = bi.Collection
	return item, nil
}

// GLMItem is a full GLM item: basic data plus the properties read from the
// netCDF file. Assets are attached separately.
type GLMItem struct {
	BasicGLMItem
	AcquisitionInfo
	PlatformInfo
	ProcessingInfo
	GOESInfo
	ProjectionInfo
	ExtractedVariables
}

// STACItem implements the ItemCreator interface
func (result GLMItem) STACItem() (*Item, error) {
	item, err := result.BasicGLMItem.STACItem()
	if err != nil {
		return nil, err
	}

	mixins := []PropertiesMixin{
		result.AcquisitionInfo,
		result.PlatformInfo,
		result.ProcessingInfo,
		result.GOESInfo,
		result.ProjectionInfo,
		result.ExtractedVariables,
	}
	for _, mixin := range mixins {
		if err = mixin.Apply(item.Properties); err != nil {
			return nil, err
		}
	}

	item.AddExtension(result.GOESInfo.Generation.ExtensionURL)
	item.AddExtension(ProcessingExtension)
	item.AddExtension(ProjectionExtension)
	return item, nil
}
