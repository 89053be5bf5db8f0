// Package config provides configuration management for captmoose.
//
// Configuration is loaded from YAML and merged in order, later sources
// overriding earlier ones:
//
//  1. Default configuration (built in)
//  2. User configuration (~/.config/captmoose/config.yaml)
//  3. Project configuration (./.captmoose/config.yaml)
//
// An explicit file given with --config replaces layers 2 and 3.
//
// # Example
//
//	moose:
//	  height: 15
//	  width: 26
//	storage:
//	  dir: /var/lib/captmoose
//	chat:
//	  cooldown: 25s
//	  paceInterval: 800ms
//	  linesPerBatch: 2
//	  legacyTrim: true
//
// The palette may be replaced as a whole. Its order is the meaning of every
// stored moose, so it must not be reordered once data exists.
package config
