package main

import (
	"github.com/srand/shopsched/pkg/log"
)

type Config struct {
	// Name of the job order heuristic.
	// Empty selects the stage-local longest first policy.
	Heuristic string `mapstructure:"heuristic"`
	// Disable colored Gantt output.
	NoColor bool `mapstructure:"no_color"`
	// Verify timeline invariants after every placement.
	Verify bool `mapstructure:"verify"`
	// Address to listen on for HTTP in serve mode.
	ListenHttp string `mapstructure:"listen_http"`
}

func (c *Config) Log() {
	log.Debug("Scheduler configuration:")
	log.Debugf("  Heuristic: %q", c.Heuristic)
	log.Debugf("  Color: %v", !c.NoColor)
	log.Debugf("  Verify: %v", c.Verify)
	log.Debugf("  HTTP listen address: %v", c.ListenHttp)
}
