// Package startup handles server configuration and structured startup
// logging.
//
// Configuration is read from an optional YAML file (FINDEX_CONFIG) first,
// then overridden by environment variables, so container deployments can
// ship a config file and still tweak individual values per environment.
package startup
