package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/machinae/jrpc-go/pkg/jsonrpc"
)

/*
batchEntry is one call in a batch file: {"method": "...", "params": [...]}.
*/
type batchEntry struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Send a batch of JSON-RPC requests",
	Long: `Send a batch of JSON-RPC requests read from a JSON file (or stdin when no
file is given). The file holds an array of {"method": ..., "params": [...]}
entries. Results print in request order; requests the server chose not to
answer print as null.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRPCClient()
		if err != nil {
			return err
		}

		entries, err := readBatchFile(args)
		if err != nil {
			return err
		}

		requests := make([]jsonrpc.Request, 0, len(entries))
		for _, entry := range entries {
			requests = append(requests, client.BuildRequest(entry.Method, entry.Params...))
		}

		log.Debug("Sending batch", "requests", len(requests))

		responses, err := client.CallBatch(cmd.Context(), requests)
		if err != nil {
			return err
		}

		results := make([]any, len(responses))

		for i, resp := range responses {
			if resp == nil {
				continue
			}

			if resp.IsError() {
				results[i] = resp.Error
				continue
			}

			var result any
			if err := resp.DecodeResult(&result); err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}

			results[i] = result
		}

		return printJSON(results)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func readBatchFile(args []string) ([]batchEntry, error) {
	var (
		data []byte
		err  error
	)

	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}

	var entries []batchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}

	return entries, nil
}
