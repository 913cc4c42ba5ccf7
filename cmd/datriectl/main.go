package main

import (
	"fmt"
	"os"

	"github.com/whs/libdatrie-go/datriectl"
)

func main() {
	if err := datriectl.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
