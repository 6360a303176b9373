package main

import (
	"os"

	"github.com/listingadmin/listing_admin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
