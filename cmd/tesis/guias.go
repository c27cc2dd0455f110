package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Glooskovint/TesisAssistantMVP/internal/guide"
	"github.com/Glooskovint/TesisAssistantMVP/internal/render"
)

func guiasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guias",
		Short: "List video guides",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(render.New(pretty).Guides(guide.New().Guides()))
		},
	}
}
