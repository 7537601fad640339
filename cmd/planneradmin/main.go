package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/weekplanner/internal/admin"
	"github.com/dmitrijs2005/weekplanner/internal/server/config"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

func main() {
	cmd := admin.NewRootCmd(config.LoadEnv(), admin.MongoConnector)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+err.Error()))
		os.Exit(1)
	}
}
