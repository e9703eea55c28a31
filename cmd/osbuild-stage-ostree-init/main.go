// osbuild-stage-ostree-init creates an empty ostree repository inside the
// tree a pipeline is building. It reads the stage arguments from stdin and
// reports through its exit status.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/osbuild-modules/internal/common"
	"github.com/osbuild/osbuild-modules/internal/ostree"
)

type stageOptions struct {
	Mode ostree.Mode `json:"mode,omitempty"`
	Path string      `json:"path,omitempty"`
}

type stageArgs struct {
	Tree    string       `json:"tree"`
	Options stageOptions `json:"options"`
}

// repoInitializer creates repositories. *ostree.CLI implements it.
type repoInitializer interface {
	Init(path string, mode ostree.Mode) error
}

func run(stdin io.Reader, repo repoInitializer) error {
	var args stageArgs
	if err := json.NewDecoder(stdin).Decode(&args); err != nil {
		return fmt.Errorf("invalid stage arguments: %v", err)
	}
	if args.Tree == "" {
		return fmt.Errorf("no tree to operate on")
	}

	mode := args.Options.Mode
	if mode == "" {
		mode = ostree.ModeArchive
	}
	if !mode.Valid() {
		return fmt.Errorf("unknown repository mode %q", mode)
	}

	path := args.Options.Path
	if path == "" {
		path = "/repo"
	}

	// the path is interpreted under the tree root and must stay there
	target := filepath.Join(args.Tree, path)
	if !strings.HasPrefix(target, filepath.Clean(args.Tree)+string(os.PathSeparator)) {
		return fmt.Errorf("repository path %q escapes the tree", path)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	return repo.Init(target, mode)
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

	if err := run(os.Stdin, &ostree.CLI{Bin: config.OSTreeBin()}); err != nil {
		logrus.Fatalf("%v", err)
	}
}
