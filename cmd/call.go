package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <method> [param...]",
	Short: "Send a single JSON-RPC request",
	Long: `Send a single JSON-RPC request to the configured endpoint and print the
decoded result. Each param is parsed as a JSON value; params that are not
valid JSON are sent as strings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRPCClient()
		if err != nil {
			return err
		}

		req := client.BuildRequest(args[0], parseParams(args[1:])...)

		log.Debug("Sending request", "method", req.Method, "id", req.ID)

		resp, err := client.Call(cmd.Context(), req)
		if err != nil {
			return err
		}

		var result any
		if err := resp.DecodeResult(&result); err != nil {
			return err
		}

		return printJSON(result)
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}

/*
parseParams turns CLI arguments into JSON-RPC params. Arguments that parse
as JSON keep their type (numbers, booleans, arrays, objects); anything else
goes through as a string, so quoting every string param is unnecessary.
*/
func parseParams(args []string) []any {
	params := make([]any, 0, len(args))

	for _, arg := range args {
		var v any

		if err := json.Unmarshal([]byte(arg), &v); err != nil {
			v = arg
		}

		params = append(params, v)
	}

	return params
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
