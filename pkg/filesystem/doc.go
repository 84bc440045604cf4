// Package filesystem provides the host filesystem helpers used by namei: atomic
// file replacement, temporary naming, and home-relative paths.
package filesystem
