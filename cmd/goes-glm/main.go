package main

import (
	"fmt"
	"os"

	"github.com/venicegeo/goes-glm-stac/util"
)

func main() {
	ctx := &util.BasicLogContext{}
	if err := util.LoadEnvFile(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	util.ConfigureLogging()
	util.LogAudit(ctx, util.LogAuditInput{Actor: "main()", Action: "startup", Actee: "self", Message: "Application Startup", Severity: util.INFO})

	if err := createCliApp(os.Stdout).Run(os.Args); err != nil {
		util.LogAlert(ctx, fmt.Sprintf("Error executing CLI app: %v", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
