package main

import (
	"fmt"
	"log"

	"mpcrec/beaver"
	"mpcrec/driver"
	"mpcrec/field"

	"github.com/fatih/color"
)

func main() {
	cfg := new(driver.Config).AddDealerFlags().Parse()

	if cfg.Small {
		color.Yellow("Warning: small preprocessing randomness is insecure; debugging only")
	}

	dealer := beaver.NewDealer(field.RandSource(), cfg.Small)
	color.Green("P2: serving preprocessing bundles on :%d", cfg.Port)
	if err := dealer.ListenAndServe(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("P2: %v", err)
	}

	for _, s := range dealer.Stats() {
		fmt.Printf("P2: dim %d: %d bundles served\n", s.Dim, s.Served)
	}
}
