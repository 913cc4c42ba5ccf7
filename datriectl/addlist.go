package datriectl

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newAddListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-list FILE",
		Short: "store every <key>\\t<data> entry in FILE into the trie",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddList,
	}
}

func runAddList(cmd *cobra.Command, args []string) error {
	triePath, _ := cmd.Flags().GetString("trie")
	alphabetPath, _ := cmd.Flags().GetString("alphabet")

	tr, err := openTrie(triePath, alphabetPath)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, dataStr, hasData := strings.Cut(line, "\t")
		data := int64(0)
		if hasData {
			var err error
			data, err = strconv.ParseInt(dataStr, 10, 32)
			if err != nil {
				return fmt.Errorf("add-list line %d: invalid data %q: %w", lineNo, dataStr, err)
			}
		}
		if err := tr.Store(keyToAlphaChars(key), int32(data)); err != nil {
			return fmt.Errorf("add-list line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return saveTrie(triePath, tr)
}
