package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker backfill-order-owners")
	}

	var err error
	switch os.Args[1] {
	case "backfill-order-owners":
		err = RunBackfillOrderOwners(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
