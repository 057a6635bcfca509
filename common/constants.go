package common

const (
	// NIRFileExtension is the conventional extension of serialized NIR files.
	NIRFileExtension = ".nir"

	// ProjectFileName is the name of a nirc project configuration file.
	ProjectFileName = "nir-project.toml"

	// NircVersion is the current version of this tool.
	NircVersion = "0.1.0"
)
