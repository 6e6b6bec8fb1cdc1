package config

import (
	"github.com/kbukum/faber/observability"
	"github.com/kbukum/faber/server"
	"github.com/kbukum/faber/validation"
)

// Config is the configuration of the faber service.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Container     ContainerConfig      `yaml:"container" mapstructure:"container"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Telemetry     observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ContainerConfig describes the container served by the service.
type ContainerConfig struct {
	// ID of the container in the registry. Defaults to the service name.
	ID string `yaml:"id" mapstructure:"id"`
	// Files holds definition files loaded as properties, in order.
	Files []string `yaml:"files" mapstructure:"files"`
	// EnvFile is a .env file whose pairs are loaded as properties.
	EnvFile string `yaml:"env_file" mapstructure:"env_file"`
	// Freeze lists entries frozen once loading completes.
	Freeze []string `yaml:"freeze" mapstructure:"freeze"`
}

// ApplyDefaults applies default values to every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Container.ID == "" {
		c.Container.ID = c.Name
	}
	c.Server.ApplyDefaults()
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section and returns the first failure.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Required("container.id", c.Container.ID).
		Identifiers("container.freeze", c.Container.Freeze).
		Identifiers("container.files", c.Container.Files).
		Validate()
}
