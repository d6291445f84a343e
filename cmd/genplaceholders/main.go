package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/adventure/internal/placeholders"
)

func main() {
	dir := flag.String("out", "data/assets", "directory to write the assets to")
	flag.Parse()

	fmt.Println("Adventure Placeholder Art Generator")
	fmt.Println("===================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Run the game to see the placeholders in action.")
}
