package main

import (
	"fmt"
	"log"

	"mpcrec/driver"
	"mpcrec/field"
)

func main() {
	cfg := new(driver.Config).AddDataFlags().AddGenFlags().Parse()

	if _, _, err := driver.Generate(*cfg, cfg.DataDir, field.RandSource()); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("Generated %d queries for %d users and %d items in %s\n",
		cfg.NumQueries, cfg.NumUsers, cfg.NumItems, cfg.DataDir)
}
