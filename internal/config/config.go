// Package config loads process configuration from an HCL file with
// environment-variable fallbacks. The file is optional: with no file and
// no environment, the server listens on :8080 with the mock provider and
// no database.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the process configuration.
type Config struct {
	Server   *Server   `hcl:"server,block"`
	Database *Database `hcl:"database,block"`
	Provider *Provider `hcl:"provider,block"`
}

// Server configures the HTTP listener.
type Server struct {
	Listen string `hcl:"listen,optional"`
}

// Database configures the Postgres connection.
type Database struct {
	URL string `hcl:"url,optional"`
}

// Provider selects and configures the generation backend. The block label
// is the backend kind: openai, anthropic, claude-cli, or mock.
type Provider struct {
	Kind   string `hcl:"kind,label"`
	Model  string `hcl:"model,optional"`
	APIKey string `hcl:"api_key,optional"`
}

// Load reads path (optional) and fills gaps from the environment. A named
// file that does not exist is an error; an empty path is not.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
		}
		if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
			return nil, fmt.Errorf("decode %s: %s", path, diags.Error())
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills unset fields from the environment, then from the
// built-in defaults.
func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Listen == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.Server.Listen = ":" + port
		} else {
			c.Server.Listen = ":8080"
		}
	}

	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}

	if c.Provider == nil {
		kind := os.Getenv("DEFAULT_LLM_PROVIDER")
		if kind == "" {
			kind = "mock"
		}
		c.Provider = &Provider{Kind: kind}
	}
	if c.Provider.APIKey == "" {
		switch c.Provider.Kind {
		case "openai":
			c.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			c.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if c.Provider.Model == "" {
		switch c.Provider.Kind {
		case "openai":
			c.Provider.Model = os.Getenv("OPENAI_MODEL")
		case "anthropic":
			c.Provider.Model = os.Getenv("ANTHROPIC_MODEL")
		}
	}
}
