package datriectl

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-list FILE",
		Short: "remove every key listed in FILE, one per line, from the trie",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteList,
	}
}

func runDeleteList(cmd *cobra.Command, args []string) error {
	triePath, _ := cmd.Flags().GetString("trie")

	tr, err := openTrie(triePath, "")
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	missed := 0
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		if !tr.Delete(keyToAlphaChars(key)) {
			missed++
			fmt.Fprintf(cmd.ErrOrStderr(), "delete-list: %q not found\n", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := saveTrie(triePath, tr); err != nil {
		return err
	}
	if missed > 0 {
		return fmt.Errorf("%d key(s) were not found", missed)
	}
	return nil
}
