// Package cmd provides CLI command implementations.
package cmd

// GlobalOptions contains global CLI options.
type GlobalOptions struct {
	ConfigFile  string `name:"configfile" help:"Settings file to use instead of discovering feedrestore.yaml files" env:"FEEDRESTORE_CONFIG" type:"path"`
	PackagesDir string `name:"packages" help:"Global packages folder (default ${defaultPackagesDir})" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file on exit" type:"path"`
}
