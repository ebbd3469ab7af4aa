// Package cmd implements the tagargs subcommands.
//
// Every command that reads templates takes one or more schema files with
// -s. Commands write results to the bound [IO] and return errors to the
// caller, which logs them.
package cmd

// ConfigIdentifier is the kong variable identifier containing the path to the
// configuration file.
const ConfigIdentifier = "config"
