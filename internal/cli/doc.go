// Package cli defines the Cobra command tree for create-canton-app. The root
// command creates a project; compile, test, doctor, templates, config and
// version are registered as subcommands, one per file. Commands only handle
// flags, output and exit status and delegate the work to internal packages.
package cli
