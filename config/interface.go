package config

// Configurator loads the config file used by a command. Commands hold one
// so tests can swap in a mock.
type Configurator interface {
	GetDefaultConfigPath() (string, error)
	Parse(string) error
	Get() *Config
}

// New returns the Configurator backed by this package's global config.
func New() Configurator {
	return packageConfigurator{}
}

type packageConfigurator struct{}

func (packageConfigurator) GetDefaultConfigPath() (string, error) { return GetDefaultConfigPath() }
func (packageConfigurator) Parse(path string) error               { return Parse(path) }
func (packageConfigurator) Get() *Config                          { return Get() }
