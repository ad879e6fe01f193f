// Package pkg holds project metadata and the per-user directories derived
// from it.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module, embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It appears in help text, in default config
	// paths and as the prefix of environment variables.
	Name = "adcopy"
	// Description is a one-line summary of the project for help output.
	Description = "Expand ad copy expressions into headline variants"
)

// AuthorInfo is an author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
