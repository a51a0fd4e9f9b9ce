/*
Package cmd implements the command-line interface for the jrpc client.
It provides commands for sending single JSON-RPC calls and batches against
a configured endpoint.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/machinae/jrpc-go/pkg/jsonrpc"
	"github.com/machinae/jrpc-go/pkg/transport"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the tool,
which allows overriding the defaults without rebuilding.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "jrpc"
	cfgFile     string
	verbose     bool

	rootCmd = &cobra.Command{
		Use:   "jrpc",
		Short: "A JSON-RPC 2.0 command line client",
		Long:  longRoot,
	}
)

/*
Execute is the main entry point for the jrpc CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentFlags().String("endpoint", "", "JSON-RPC endpoint URL")
	rootCmd.PersistentFlags().String("username", "", "basic auth username")
	rootCmd.PersistentFlags().String("password", "", "basic auth password")

	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("username", rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))
}

/*
initConfig writes the default config file to the user's home directory if
it doesn't exist yet, then loads it through viper.
*/
func initConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := writeConfig(); err != nil {
		log.Fatal("failed to write default config", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	home, _ := os.UserHomeDir()
	viper.AddConfigPath(home + "/." + projectName)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal("failed to read config", "error", err)
	}
}

/*
newRPCClient constructs the JSON-RPC client the subcommands share, wiring
the configured endpoint and credentials into an HTTP transport.
*/
func newRPCClient() (*jsonrpc.Client, error) {
	endpoint := viper.GetString("endpoint")

	if endpoint == "" {
		return nil, errors.New("no endpoint configured (set endpoint in config or pass --endpoint)")
	}

	opts := []transport.HTTPOption{
		transport.WithBasicAuth(
			viper.GetString("username"),
			viper.GetString("password"),
		),
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, transport.WithTimeout(timeout))
	}

	log.Debug("Connecting to JSON-RPC endpoint", "endpoint", endpoint)

	return jsonrpc.NewClient(transport.NewHTTP(endpoint, opts...)), nil
}

/*
writeConfig writes the default config file to the user's home directory.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := home + "/." + projectName
	if !checkFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := configDir + "/" + cfgFile

	if checkFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/" + cfgFile); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}
	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", fullPath)

	return nil
}

func checkFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
jrpc is a command line client for JSON-RPC 2.0 servers.
It sends single calls or batches over HTTP(S), correlates the responses
back to their requests, and prints the decoded results.
`
