// Package configuration provides loading facilities for namei's YAML global
// configuration file.
package configuration
