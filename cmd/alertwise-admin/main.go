package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: alertwise-admin <promote|demote> <subject_id> | migrate")
	}

	switch os.Args[1] {
	case "promote":
		RunSetRole(os.Args[2:], true)
	case "demote":
		RunSetRole(os.Args[2:], false)
	case "migrate":
		RunMigrate()
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
