package model

// Much of the collection metadata comes from the NCEI landing page:
// https://www.ncei.noaa.gov/access/metadata/landing-page/bin/iso?id=gov.noaa.ncdc:C01527

// StacVersion is the STAC version of every emitted document
const StacVersion = "1.0.0"

// Collection
const (
	CollectionID    = "goes-glm"
	CollectionTitle = "GLM L2 Lightning Detections: Events, Groups, and Flashes"

	CollectionDescription = "The Lightning Detections: Events, Groups, and Flashes product consists" +
		" of a hierarchy of earth-located lightning radiant energy measures including events," +
		" groups, and flashes. Lightning events are detected by the instrument. Lightning groups" +
		" are a collection of one or more lightning events that satisfy temporal and spatial" +
		" coincidence thresholds. Similarly, lightning flashes are a collection of one or more" +
		" lightning groups that satisfy temporal and spatial coincidence thresholds. The product" +
		" includes the relationship among lightning events, groups, and flashes, and the area" +
		" coverage of lightning groups and flashes. The product also includes processing and" +
		" data quality metadata, and satellite state and location information."

	CollectionLicense = "proprietary"
)

// CollectionKeywords are always present; format keywords are appended per options
var CollectionKeywords = []string{
	"NOAA",
	"GOES",
	"GOES-16",
	"GOES-17",
	"GOES-18",
	"GOES-19",
	"GLM",
	"Atmosphere",
	"Environmental",
	"Lightning",
	"Weather",
}

// Providers of the GLM product
var Providers = []Provider{
	{
		Name:  "DOC/NOAA/NESDIS",
		Roles: []string{"producer", "licensor"},
		Description: "Provided by:\n\n" +
			"* U.S. Department of Commerce\n" +
			"* National Oceanic and Atmospheric Administration\n" +
			"* National Environmental Satellite, Data, and Information Services",
		URL: "https://www.goes.noaa.gov",
	},
}

// Documentation links attached to the collection
var (
	LinkLandingPage = Link{
		Rel:   "about",
		Href:  "https://www.ncei.noaa.gov/access/metadata/landing-page/bin/iso?id=gov.noaa.ncdc:C01527",
		Type:  "text/html",
		Title: "Product Landing Page",
	}
	LinkUserGuideMain = Link{
		Rel:   "about",
		Href:  "https://www.goes-r.gov/users/docs/PUG-main-vol1.pdf",
		Type:  "application/pdf",
		Title: "Product Definition and Users' Guide (PUG) Vol.1 Main",
	}
	LinkUserGuideL2Products = Link{
		Rel:   "about",
		Href:  "https://www.goes-r.gov/products/docs/PUG-L2+-vol5.pdf",
		Type:  "application/pdf",
		Title: "Product Definition and Users' Guide (PUG) Vol.5 Level 2+ Products",
	}
)

// Extension schema URLs
const (
	GOESExtension       = "https://stac-extensions.github.io/goes/v1.0.0/schema.json"
	ProcessingExtension = "https://stac-extensions.github.io/processing/v1.1.0/schema.json"
	DatacubeExtension   = "https://stac-extensions.github.io/datacube/v2.1.0/schema.json"
	ProjectionExtension = "https://stac-extensions.github.io/projection/v1.1.0/schema.json"
	TableExtension      = "https://stac-extensions.github.io/table/v1.2.0/schema.json"
	ScientificExtension = "https://stac-extensions.github.io/scientific/v1.0.0/schema.json"
	ItemAssetsExtension = "https://stac-extensions.github.io/item-assets/v1.0.0/schema.json"
)

// Scientific
const (
	DOI      = "10.7289/V5KH0KK6"
	Citation = "GOES-R Algorithm Working Group and GOES-R Series Program, (2018): " +
		"NOAA GOES-R Series Geostationary Lightning Mapper (GLM) Level 2 Lightning Detection: " +
		"Events, Groups, and Flashes. [indicate subset used]." +
		"NOAA National Centers for Environmental Information. doi:10.7289/V5KH0KK6. [access date]."
)

// Shared metadata
const (
	ProcessingLevel = "L2"
	Resolution      = 8000
	Mission         = "GOES"
	Constellation   = "GOES"
)

// Assets
const (
	ParquetTitleFlashes = "Processed GeoParquet file for flashes"
	ParquetTitleGroups  = "Processed GeoParquet file for groups"
	ParquetTitleEvents  = "Processed GeoParquet file for events"
	ParquetKeyFlashes   = "geoparquet_flashes"
	ParquetKeyGroups    = "geoparquet_groups"
	ParquetKeyEvents    = "geoparquet_events"
	ParquetMediaType    = "application/x-parquet"
	ParquetGeometryCol  = "geometry"
	ParquetDatetimeType = "datetime"

	NetCDFTitle     = "Original netCDF 4 file"
	NetCDFMediaType = "application/netcdf"
	NetCDFKey       = "netcdf"

	ThumbnailKey = "thumbnail"
)

// Asset roles
var (
	ParquetRoles = []string{"data", "cloud-optimized"}
	NetCDFRoles  = []string{"data", "source"}
)

// IgnoredUnits are units that carry no information and are not reported
var IgnoredUnits = []string{"1", "count"}

// Coordinate reference systems
const (
	SourceCRS = "EPSG:4326"
	TargetCRS = 4326
)

// PropertyPrefix is the namespace prefix of extracted variable properties
const PropertyPrefix = GOESNamespace + ":"

// LegacyPropertyPrefix was used before the GOES extension existed and must
// not appear in emitted documents
const LegacyPropertyPrefix = "goes-glm:"
