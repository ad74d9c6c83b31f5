// Package cli implements leadctl, an operator tool that drives the site API the same way the
// quote form and the upload page do.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"remodelsite/internal/client"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 60 * time.Second
)

type app struct {
	v   *viper.Viper
	in  io.Reader
	out io.Writer
	log *logrus.Logger
}

// NewRootCommand builds a fresh command tree. Settings come from flags, then LEADCTL_*
// environment variables, then the optional config file.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), in: in, out: out, log: logrus.New()}
	a.log.SetOutput(os.Stderr)

	var cfgFile string

	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Submit quotes and manage submission files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cfgFile)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("server", defaultServer, "site base URL")
	flags.Duration("timeout", defaultTimeout, "timeout for each upload")
	flags.Bool("debug", false, "enable debug logging")
	_ = a.v.BindPFlag("server", flags.Lookup("server"))
	_ = a.v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))

	root.AddCommand(
		a.newQuoteCmd(),
		a.newUploadCmd(),
		a.newFilesCmd(),
		a.newRmCmd(),
		a.newNotesCmd(),
	)
	return root
}

func (a *app) initConfig(cfgFile string) error {
	a.v.SetEnvPrefix("LEADCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if a.v.GetBool("debug") {
		a.log.SetLevel(logrus.DebugLevel)
	} else {
		a.log.SetLevel(logrus.WarnLevel)
	}
	a.log.WithField("server", a.server()).Debug("using server")
	return nil
}

func (a *app) server() string {
	return strings.TrimRight(a.v.GetString("server"), "/")
}

func (a *app) timeout() time.Duration {
	if d := a.v.GetDuration("timeout"); d > 0 {
		return d
	}
	return defaultTimeout
}

// api bounds single calls by the caller's context; uploads get their own deadline from the
// queue.
func (a *app) api() *client.Client {
	return client.New(a.server(), 0)
}
