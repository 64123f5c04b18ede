package commands

import (
	"github.com/touchbind/touchbind/config"
	"github.com/touchbind/touchbind/gesture"
)

// BindingsRequest represents the parameters for the bindings command
type BindingsRequest struct {
	Binds      []string
	ConfigPath string
}

// buildTable builds a binding table from config file entries followed by
// command-line entries. Later additions are searched first, so flags
// shadow config entries with the same pattern.
func buildTable(configBinds, flagBinds []string) (*gesture.Table, error) {
	table := gesture.NewTable()
	for _, entry := range configBinds {
		if err := table.Add(entry); err != nil {
			return nil, err
		}
	}
	for _, entry := range flagBinds {
		if err := table.Add(entry); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// loadTable resolves the effective binding table for a config path plus
// --bind flags.
func loadTable(configPath string, flagBinds []string) (*gesture.Table, *config.File, error) {
	var cfg *config.File
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, &ConfigError{Err: err}
		}
		cfg = loaded
	} else {
		cfg = &config.File{}
	}

	table, err := buildTable(cfg.Binds, flagBinds)
	if err != nil {
		return nil, nil, &ConfigError{Err: err}
	}
	return table, cfg, nil
}

// BindingsCommand validates the configured bindings and returns the
// effective table in search order.
func BindingsCommand(req BindingsRequest) *CommandResponse {
	table, _, err := loadTable(req.ConfigPath, req.Binds)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"count":    table.Len(),
		"bindings": table.Bindings(),
	})
}
