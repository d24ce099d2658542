// Package config defines the format-agnostic model of an application's
// dependency data, along with the Loader interface that turns files into it.
//
// The `config.Model` is the single source of truth for the debugger and the
// server. Concrete loaders, such as the HCL one, live in separate packages.
package config
