// osbuild-input-ostree materializes ostree commits for a build. It reads
// one request from stdin, copies the requested commits from the store into
// a freshly created repository and describes that repository on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/osbuild-modules/internal/common"
	"github.com/osbuild/osbuild-modules/internal/inputs"
	"github.com/osbuild/osbuild-modules/internal/ostree"
	"github.com/osbuild/osbuild-modules/internal/storeapi"
)

func run(configFile string) error {
	config, err := common.ParseConfig(configFile)
	if err != nil {
		return fmt.Errorf("could not load config file %q: %v", configFile, err)
	}
	if err := common.SetupLogging(config.LogFormat, config.LogLevel); err != nil {
		return err
	}

	request, err := inputs.ParseRequest(os.Stdin)
	if err != nil {
		return err
	}

	store := storeapi.NewClient(request.API.Store)
	repo := &ostree.CLI{Bin: config.OSTreeBin()}

	reply, err := inputs.NewResolver(store, repo).Resolve(context.Background(), request)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(reply)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", common.DefaultConfigPath, "Path to the configuration file.")
	flag.Parse()

	if err := run(configFile); err != nil {
		logrus.Fatalf("%v", err)
	}
}
