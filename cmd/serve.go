package cmd

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leaguesim/league-sim/sim/store"
)

var (
	serveDSN      string // History store to serve
	serveLogLevel string // Log verbosity level for serve
	listenAddr    string // HTTP listen address
)

// serveCmd browses a history store over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest recorded history as read-only JSON",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(serveLogLevel)

		st, err := store.Open(serveDSN)
		if err != nil {
			logrus.Fatalf("Failed to open history store: %v", err)
		}
		defer st.Close()

		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           store.NewRouter(st),
			ReadHeaderTimeout: 5 * time.Second,
		}
		logrus.Infof("Serving %s on %s", serveDSN, listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}
