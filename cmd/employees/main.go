package main

import (
	"context"
	"os"

	"github.com/GoArmGo/EmployeeApp/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Stdin); err != nil {
		os.Exit(1)
	}
}
