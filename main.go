package main

import (
	"context"
	"os"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
