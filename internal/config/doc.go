// Package config loads the optional shipit project configuration file.
//
// The file customizes the mirror source/destination and subtree names and
// declares the deployment target. It is looked up in the working directory
// under four names, in priority order:
//
//	shipit.json, shipit.jsonc, shipit.yaml, shipit.yml
//
// JSON files may contain JSONC comments and trailing commas; the package
// uses github.com/tidwall/jsonc to strip them before parsing with the
// standard encoding/json library. YAML files are parsed with gopkg.in/yaml.v3.
//
// An absent file is not an error — every setting has a default and the
// deployment target can be supplied entirely through environment variables.
package config
