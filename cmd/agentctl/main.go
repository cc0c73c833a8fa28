// Command agentctl is a minimal embedding example: it builds a Config
// from the environment, starts an Agent, times a couple of sample
// transactions, and shuts down cleanly on SIGINT/SIGTERM.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/newrelic/go-apm-agent"
	"github.com/newrelic/go-apm-agent/pkg/config"
	"github.com/newrelic/go-apm-agent/pkg/log"
)

func main() {
	if level, err := logrus.ParseLevel(os.Getenv("NEW_RELIC_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	cfg := config.FromEnvironment()

	a, err := agent.New(cfg)
	if err != nil {
		log.WithError(err).Error("invalid configuration, exiting")
		os.Exit(1)
	}

	runDemoTransactions(a)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	a.Shutdown()
}

func runDemoTransactions(a *agent.Agent) {
	txn := a.StartTransaction("demo", true)
	txn.SetWebRequest("GET", "/demo", "localhost")
	time.Sleep(10 * time.Millisecond)
	txn.End()

	bg := a.StartTransaction("background-job", false)
	time.Sleep(5 * time.Millisecond)
	bg.End()
}
