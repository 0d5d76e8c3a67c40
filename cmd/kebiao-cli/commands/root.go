package commands

import (
	"context"
	"fmt"
	"os"

	"kebiao-backend/lib/configutil"
	"kebiao-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

// falls back to the deployment this tool was written against
const defaultBaseUrl = "http://jwglxt.xzit.edu.cn/jwglxt"

type Config struct {
	BaseUrl string `json:"base_url"`
}

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kebiao-cli",
	Short: "kebiao-cli pulls a student's weekly schedule out of a jwglxt portal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "config.json5",
		"path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"debug logging and request/response capture",
	)
}

func loadConfig() Config {
	config, err := configutil.ReadConfig[Config](configPath)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "failed to read config:", err)
		os.Exit(1)
	}
	if config.BaseUrl == "" {
		config.BaseUrl = defaultBaseUrl
	}
	return config
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
