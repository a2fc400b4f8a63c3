// pkg/validate/validate.go
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidID is returned for identifiers that must never reach a command line.
var ErrInvalidID = errors.New("invalid identifier")

var (
	packageIDPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-+_]*$`)
	packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-_]*$`)
)

// queryReplacer strips shell metacharacters from free-text search input.
var queryReplacer = strings.NewReplacer(
	`"`, "",
	";", "",
	"&", "",
	"|", "",
	"`", "",
	"$", "",
	"(", "",
	")", "",
)

// PackageID checks a package-manager id such as Notepad++.Notepad++.
func PackageID(id string) error {
	if !packageIDPattern.MatchString(id) {
		return fmt.Errorf("%w: package id %q", ErrInvalidID, id)
	}
	return nil
}

// PackageName checks a removable package name. The grammar is looser than
// PackageID only in that it has no '+'.
func PackageName(name string) error {
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("%w: package name %q", ErrInvalidID, name)
	}
	return nil
}

// SanitizeQuery removes characters that could break out of a quoted argument.
func SanitizeQuery(query string) string {
	return strings.TrimSpace(queryReplacer.Replace(query))
}
