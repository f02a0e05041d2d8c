package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/stoat"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stoat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stoat version %s\n", strings.TrimSpace(stoat.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
