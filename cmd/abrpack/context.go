package main

import (
	"abrpack/internal/config"
)

// commandContext lazily loads configuration shared by the subcommands.
type commandContext struct {
	configFlag *string

	cfg        *config.Config
	configPath string
	configSeen bool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.configPath = resolved
	c.configSeen = exists
	return cfg, nil
}
