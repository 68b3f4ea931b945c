// Package cli provides the command-line interface for the websearch application.
package cli

import (
	"sync"

	"github.com/law-makers/websearch/internal/app"
	"github.com/spf13/cobra"
)

var (
	appMu     sync.RWMutex
	globalApp *app.Application
)

// SetApp stores the Application for the running command
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	appMu.Lock()
	globalApp = a
	appMu.Unlock()
}

// GetApp retrieves the Application of the running command
func GetApp() *app.Application {
	appMu.RLock()
	defer appMu.RUnlock()
	return globalApp
}

// GetAppFromCmd retrieves the Application stored for cmd
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	if cmd == nil {
		return nil
	}
	return GetApp()
}
