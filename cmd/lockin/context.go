package main

import (
	"fmt"
	"strings"
	"sync"

	"lockin/internal/client"
	"lockin/internal/config"
)

type commandContext struct {
	addrFlag   *string
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(addrFlag, configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		addrFlag:   addrFlag,
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) apiAddr() string {
	if c.addrFlag != nil && strings.TrimSpace(*c.addrFlag) != "" {
		return strings.TrimSpace(*c.addrFlag)
	}
	if cfg, err := c.ensureConfig(); err == nil && cfg != nil {
		return cfg.Paths.APIBind
	}
	return "127.0.0.1:7643"
}

func (c *commandContext) withClient(fn func(*client.Client) error) error {
	addr := c.apiAddr()
	cl, err := client.New(addr)
	if err != nil {
		return err
	}
	if err := fn(cl); err != nil {
		if client.IsDaemonUnavailable(err) {
			return fmt.Errorf("connect to daemon at %s: no daemon listening; start it with `lockind`", addr)
		}
		return err
	}
	return nil
}
