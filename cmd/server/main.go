package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"faturacli/internal/app"
	"faturacli/pkg/contracts"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		info := contracts.GetVersionInfo()
		fmt.Printf("  build time: %s\n  commit: %s\n  go: %s (%s/%s)\n",
			info.BuildTime, info.GitCommit, info.GoVersion, info.OS, info.Arch)
		return
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
