package model

// ItemCreator is an interface for data that can convert itself to a STAC item
type ItemCreator interface {
	STACItem() (*Item, error)
}

// PropertiesMixin is an interface for data that can be used to augment the
// properties of an existing item
type PropertiesMixin interface {
	Apply(Properties) error
}
