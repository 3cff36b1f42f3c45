package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run only the package sync worker",
	Long:  "worker processes package sync tasks until it receives SIGINT or SIGTERM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.loggerService.Shutdown()
		defer a.server.Redis.Close()
		defer a.server.DB.Close()

		if err := a.server.Job.Run(); err != nil {
			return errors.Wrap(err, "job server stopped")
		}
		return nil
	},
}
