// osbuild-stage-buildstamp writes the .buildstamp file into the tree a
// pipeline is building. It reads the stage arguments from stdin and reports
// through its exit status.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/osbuild-modules/internal/buildstamp"
	"github.com/osbuild/osbuild-modules/internal/common"
)

type stageOptions struct {
	Arch    string `json:"arch"`
	Product string `json:"product"`
	Version string `json:"version"`
	Final   *bool  `json:"final"`
	Variant string `json:"variant,omitempty"`
	BugURL  string `json:"bugurl,omitempty"`
}

type stageArgs struct {
	Tree    string       `json:"tree"`
	Options stageOptions `json:"options"`
}

func run(stdin io.Reader) error {
	var args stageArgs
	if err := json.NewDecoder(stdin).Decode(&args); err != nil {
		return fmt.Errorf("invalid stage arguments: %v", err)
	}
	if args.Tree == "" {
		return fmt.Errorf("no tree to operate on")
	}
	if args.Options.Final == nil {
		return fmt.Errorf("buildstamp: final not set")
	}

	stamp := buildstamp.Stamp{
		Arch:    args.Options.Arch,
		Product: args.Options.Product,
		Version: args.Options.Version,
		Final:   *args.Options.Final,
		Variant: args.Options.Variant,
		BugURL:  args.Options.BugURL,
	}

	return stamp.Write(args.Tree)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", common.DefaultConfigPath, "Path to the configuration file.")
	flag.Parse()

	config, err := common.ParseConfig(configFile)
	if err != nil {
		logrus.Fatalf("could not load config file %q: %v", configFile, err)
	}
	if err := common.SetupLogging(config.LogFormat, config.LogLevel); err != nil {
		logrus.Fatalf("%v", err)
	}

	if err := run(os.Stdin); err != nil {
		logrus.Fatalf("%v", err)
	}
}
