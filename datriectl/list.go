package datriectl

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "enumerate every key stored in the trie, in alphabet order",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	triePath, _ := cmd.Flags().GetString("trie")
	tr, err := openTrie(triePath, "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	it := tr.Iterator()
	for it.Next() {
		key, ok := it.Key()
		if !ok {
			return fmt.Errorf("list: failed to decode a stored key back to its external alphabet")
		}
		runes := make([]rune, len(key))
		for i, c := range key {
			runes[i] = rune(c)
		}
		fmt.Fprintf(out, "%s\t%d\n", string(runes), it.Data())
	}
	return nil
}
