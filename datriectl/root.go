// Package datriectl implements the datriectl command-line utility: a
// thin driver over package datrie for building, querying and inspecting
// trie files from the shell.
package datriectl

import (
	"github.com/spf13/cobra"
)

const appName = "datriectl"

// Execute runs the datriectl command tree against os.Args.
func Execute() error {
	root := &cobra.Command{
		Use:   appName,
		Short: appName + " - inspect and build double-array trie files",
	}

	root.PersistentFlags().String("trie", "", "path to the trie file")
	root.PersistentFlags().String("alphabet", "", "path to an alphabet range file, used only when --trie does not exist yet")
	_ = root.MarkPersistentFlagRequired("trie")

	root.AddCommand(newAddListCommand())
	root.AddCommand(newDeleteListCommand())
	root.AddCommand(newQueryCommand())
	root.AddCommand(newListCommand())

	return root.Execute()
}
