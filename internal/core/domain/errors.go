package domain

import "go.trai.ch/zerr"

var (
	// ErrNoDocumentRoot is returned when an absolute or hosted reference is resolved without a document root.
	ErrNoDocumentRoot = zerr.New("no document root set")

	// ErrOutsideDocumentRoot is returned when a root-relative URL is requested for a file outside the document root.
	ErrOutsideDocumentRoot = zerr.New("file is outside the document root")

	// ErrNoHostsServed is returned when a reference carries a host but no hosts are served from the document root.
	ErrNoHostsServed = zerr.New("no hosts served from document root")

	// ErrNoMatchingHost is returned when a reference carries a host that is not one of the local hosts.
	ErrNoMatchingHost = zerr.New("no matching host found")

	// ErrAssetNotFound is returned when a referenced asset does not exist on disk.
	ErrAssetNotFound = zerr.New("asset could not be found")

	// ErrDependencyNotFound is returned when a declared dependency cannot be read.
	ErrDependencyNotFound = zerr.New("declared dependency could not be read")

	// ErrUnknownCacheBuster is returned for a cache buster type other than none, soft, hard or rails.
	ErrUnknownCacheBuster = zerr.New("unknown cache buster type, expected 'none', 'soft', 'hard' or 'rails'")

	// ErrUnknownEmbedType is returned for an image embed type other than none, data_uri or mhtml.
	ErrUnknownEmbedType = zerr.New("unknown image embed type, expected 'none', 'data_uri' or 'mhtml'")

	// ErrUnknownURLMode is returned for a URL mode other than original, relative or absolute.
	ErrUnknownURLMode = zerr.New("unknown url mode, expected 'original', 'relative' or 'absolute'")

	// ErrConflictingURLModes is returned when both relative and absolute URLs are requested.
	ErrConflictingURLModes = zerr.New("choose either relative or absolute urls, not both")

	// ErrUnknownAssetType is returned when the type of a file cannot be guessed from its extension.
	ErrUnknownAssetType = zerr.New("unable to guess type (css/js) of file")

	// ErrUnknownCompression is returned for a precompression format other than gzip or brotli.
	ErrUnknownCompression = zerr.New("unknown compression, expected 'gzip' or 'brotli'")

	// ErrNoInputFiles is returned when a merge is requested without input files.
	ErrNoInputFiles = zerr.New("please provide at least one input file")

	// ErrOutputExists is returned when the output file exists and overwriting was not forced.
	ErrOutputExists = zerr.New("output exists, run again with --force to overwrite")

	// ErrVerificationFailed is returned when the linter reports problems and problems are not ignored.
	ErrVerificationFailed = zerr.New("input files contain problems")

	// ErrMinifierNotFound is returned when the requested minifier is unknown or its binary cannot be located.
	ErrMinifierNotFound = zerr.New("minifier not found")

	// ErrLinterNotFound is returned when the linter or its runtime cannot be located.
	ErrLinterNotFound = zerr.New("linter not found")

	// ErrCommandFailed is returned when an external tool exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigNotFound is returned when no squeeze.yaml exists in the working directory or its parents.
	ErrConfigNotFound = zerr.New("could not find squeeze.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrBundleNotFound is returned when a requested bundle is not declared in the config file.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrMissingBundleOutput is returned when a bundle declares no output.
	ErrMissingBundleOutput = zerr.New("bundle has no output")

	// ErrStoreReadFailed is returned when the build info store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info store cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info store cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrHomeNotFound is returned when no home directory can be determined.
	ErrHomeNotFound = zerr.New("unable to determine home directory")
)
