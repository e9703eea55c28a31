// osbuild-mock-store serves the store API over a unix socket, backed by a
// plain directory. It stands in for the production artifact store so that
// the input binaries can be exercised end to end.
package main

import (
	"flag"
	"net"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/coreos/go-systemd/v22/activation"
	"github.com/sirupsen/logrus"

	"github.com/osbuild/osbuild-modules/internal/common"
	"github.com/osbuild/osbuild-modules/internal/storeapi"
)

func main() {
	var configFile string
	var root string
	var socket string
	flag.StringVar(&configFile, "config", common.DefaultConfigPath, "Path to the configuration file.")
	flag.StringVar(&root, "root", "", "Directory backing the store.")
	flag.StringVar(&socket, "socket", "/run/osbuild-modules/store.socket", "Path of the API socket. Ignored when socket activated.")
	flag.Parse()

	config, err := common.ParseConfig(configFile)
	if err != nil {
		logrus.Fatalf("could not load config file %q: %v", configFile, err)
	}
	if err := common.SetupLogging(config.LogFormat, config.LogLevel); err != nil {
		logrus.Fatalf("%v", err)
	}

	logrus.Info("Store configuration:")
	encoder := toml.NewEncoder(logrus.StandardLogger().WriterLevel(logrus.InfoLevel))
	if err := encoder.Encode(config); err != nil {
		logrus.Fatalf("could not print config: %v", err)
	}

	if root == "" {
		logrus.Fatal("-root is not set")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		logrus.Fatalf("could not create store root: %v", err)
	}

	listeners, err := activation.Listeners()
	if err != nil {
		logrus.Fatalf("could not get listening sockets: %v", err)
	}

	var listener net.Listener
	switch len(listeners) {
	case 0:
		err := os.Remove(socket)
		if err != nil && !os.IsNotExist(err) {
			logrus.Fatalf("could not remove stale socket: %v", err)
		}
		listener, err = net.Listen("unix", socket)
		if err != nil {
			logrus.Fatalf("could not listen on %s: %v", socket, err)
		}
	case 1:
		listener = listeners[0]
	default:
		logrus.Fatalf("unexpected number of listening sockets (%d), expected one", len(listeners))
	}

	logrus.WithFields(logrus.Fields{
		"root":   root,
		"socket": listener.Addr().String(),
	}).Info("store api listening")

	server := storeapi.NewServer(&storeapi.DirectoryBackend{Root: root})
	if err := server.Serve(listener); err != nil {
		logrus.Fatalf("%v", err)
	}
}
