package ostree

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// CLI invokes the ostree command line tool. The zero value runs "ostree"
// from $PATH and forwards command output to stderr.
type CLI struct {
	// Bin overrides the path of the ostree binary.
	Bin string

	// Output receives stdout and stderr of invoked commands.
	Output io.Writer
}

// var alias for exec.Command() that can be mocked for testing
var execCommand = exec.Command

func (c *CLI) command(args ...string) error {
	bin := c.Bin
	if bin == "" {
		bin = "ostree"
	}
	output := c.Output
	if output == nil {
		output = os.Stderr
	}

	logrus.Infof("running %s %s", bin, strings.Join(args, " "))

	cmd := execCommand(bin, args...)
	cmd.Stdout = output
	cmd.Stderr = output
	if err := cmd.Run(); err != nil {
		return NewCommandError("ostree %s: %v", args[0], err)
	}
	return nil
}

// Init creates a new repository at path with the given object storage mode.
// The path itself is created if missing, but not its parents.
func (c *CLI) Init(path string, mode Mode) error {
	return c.command("init", "--mode="+string(mode), "--repo="+path)
}

// PullLocal copies the given commit from the repository at source into the
// repository at repo. Objects that are already present are not copied
// again.
func (c *CLI) PullLocal(repo, source, commit string) error {
	return c.command("pull-local", source, commit, "--repo="+repo)
}

// CreateRef points a new ref called name at commit in the repository at
// repo. The name is not validated here, see VerifyRef.
func (c *CLI) CreateRef(repo, name, commit string) error {
	return c.command("refs", "--create", name, commit, "--repo="+repo)
}
