package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rokybeast/passlock/internal/config"
)

// ConfigShow prints the effective configuration (file, then environment)
func ConfigShow(opts Options) {
	s := Setup(opts)
	defer s.Close()

	data, err := yaml.Marshal(s.Config)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("# %s\n", configPath())
	fmt.Print(string(data))
}

// ConfigSave writes the effective configuration to the config file so it
// can be edited by hand
func ConfigSave(opts Options) {
	s := Setup(opts)
	defer s.Close()

	path := configPath()
	if path == "" {
		fmt.Fprintf(os.Stderr, "Error: cannot determine config directory\n")
		os.Exit(1)
	}
	if err := config.Save(path, s.Config); err != nil {
		HandleError(err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
}

func configPath() string {
	if p := os.Getenv(config.EnvConfig); p != "" {
		return p
	}
	return config.DefaultPath()
}
