// Package buildstamp writes the .buildstamp file that identifies a product
// build inside an image tree.
package buildstamp

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/ini.v1"
)

// Filename of the stamp inside the tree.
const Filename = ".buildstamp"

// timestamp layout of the build id, year to minute
const buildIDLayout = "200601021504"

// var alias for time.Now() that can be mocked for testing
var timeNow = time.Now

// Stamp identifies one product build.
type Stamp struct {
	Arch    string
	Product string
	Version string
	Final   bool

	// Variant and BugURL are optional and left out of the stamp file when
	// empty.
	Variant string
	BugURL  string
}

// Validate checks that the stamp carries everything a stamp file requires.
func (s *Stamp) Validate() error {
	if s.Arch == "" {
		return fmt.Errorf("buildstamp: arch not set")
	}
	if s.Product == "" {
		return fmt.Errorf("buildstamp: product not set")
	}
	if s.Version == "" {
		return fmt.Errorf("buildstamp: version not set")
	}
	return nil
}

// BuildID derives the build identifier from the current time and the
// stamp's architecture.
func (s *Stamp) BuildID() string {
	return timeNow().Format(buildIDLayout) + "." + s.Arch
}

// Write stores the stamp as <tree>/.buildstamp.
func (s *Stamp) Write(tree string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	file := ini.Empty()

	main := file.Section("Main")
	main.Key("product").SetValue(s.Product)
	main.Key("version").SetValue(s.Version)
	main.Key("isfinal").SetValue(strconv.FormatBool(s.Final))
	main.Key("uuid").SetValue(s.BuildID())
	if s.Variant != "" {
		main.Key("variant").SetValue(s.Variant)
	}
	if s.BugURL != "" {
		main.Key("bugurl").SetValue(s.BugURL)
	}

	file.Section("Compose").Key("osbuild").SetValue("devel")

	return file.SaveTo(filepath.Join(tree, Filename))
}
