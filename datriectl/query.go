package datriectl

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query KEY",
		Short: "print the data stored for KEY, or exit non-zero on miss",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	triePath, _ := cmd.Flags().GetString("trie")
	tr, err := openTrie(triePath, "")
	if err != nil {
		return err
	}

	data, ok := tr.Retrieve(keyToAlphaChars(args[0]))
	if !ok {
		return fmt.Errorf("%q not found", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), data)
	return nil
}
