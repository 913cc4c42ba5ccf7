package datriectl

import (
	"fmt"
	"os"

	"github.com/whs/libdatrie-go/alphamap"
	"github.com/whs/libdatrie-go/datrie"
)

// openTrie loads an existing trie file, or creates a fresh one over the
// alphabet described by alphabetPath if triePath does not exist yet.
func openTrie(triePath, alphabetPath string) (*datrie.Trie, error) {
	f, err := os.Open(triePath)
	if err == nil {
		defer f.Close()
		return datrie.ReadFrom(f)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	if alphabetPath == "" {
		return nil, fmt.Errorf("%s does not exist and no --alphabet was given to create it", triePath)
	}
	af, err := os.Open(alphabetPath)
	if err != nil {
		return nil, err
	}
	defer af.Close()
	alpha, err := parseAlphabet(af)
	if err != nil {
		return nil, err
	}
	return datrie.New(alpha), nil
}

func saveTrie(triePath string, tr *datrie.Trie) error {
	tmp := triePath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := tr.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, triePath)
}

func keyToAlphaChars(s string) []alphamap.AlphaChar {
	out := make([]alphamap.AlphaChar, 0, len(s))
	for _, r := range s {
		out = append(out, alphamap.AlphaChar(r))
	}
	return out
}
