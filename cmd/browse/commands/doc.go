// Package commands defines the browse CLI and wires its dependencies.
//
// Commands
//
//   - browse         Open the interactive reviews and critics browser
//   - browse list    Print pages of reviews or critics as a table
//
// # Implementation
//
// The root command loads the environment configuration, lets flags override
// it and builds one NYT client before any subcommand runs. Pointing
// --base-url at the api server sends every request through its cache and
// keeps the upstream key off the device; --api-key may then be left empty.
package commands
