package config

// Provider defines the api for configuration providers
// to implement to expose configuration information.
// output can be a pointer to a struct or map[string]any.
// When flat is true the `path` tags of output hold full
// paths instead of paths relative to path.
type Provider interface {
	Unmarshal(path string, flat bool, output any) error
}
