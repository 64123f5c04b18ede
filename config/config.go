// Package config reads the optional touchbind config file. Binding
// entries use the same <letters><separator><command> grammar as the
// --bind flag; parsing and validation happen later, when the table is
// built.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// File is the parsed config file contents. Bindings and devices keep
// their declaration order.
type File struct {
	Binds   []string
	Devices []string
	Listen  string
}

// Load reads an ini-style config file:
//
//	[gestures]
//	bind = gd-notify-send left-right
//	bind = gdb-notify-send triple
//
//	[input]
//	device = /dev/input/event4
//
//	[server]
//	listen = localhost:12000
//
// Repeated bind/device keys are kept in order; a later bind shadows an
// earlier one with the same pattern, exactly like repeated --bind flags.
func Load(path string) (*File, error) {
	// inline comments stay off so command text survives verbatim, ';'
	// and '#' included
	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:        true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	f := &File{}

	gestures := cfg.Section("gestures")
	if gestures.HasKey("bind") {
		f.Binds = gestures.Key("bind").ValueWithShadows()
	}

	in := cfg.Section("input")
	if in.HasKey("device") {
		f.Devices = in.Key("device").ValueWithShadows()
	}

	f.Listen = cfg.Section("server").Key("listen").String()

	return f, nil
}
