// Package config manages the two configuration layers: user-level settings
// at ~/.repoconf/config.yaml (read through Viper, overridable by REPOCONF_*
// environment variables) and the per-project file at .repoconf/config.yaml
// that declares which tools a repository syncs.
package config
