package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the Elasticsearch product index from PostgreSQL",
	Args:  cobra.NoArgs,
	RunE:  runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	if !cfg.Elastic.Enabled {
		return fmt.Errorf("elasticsearch is disabled (ELASTICSEARCH_ENABLED=false)")
	}
	a, err := newApp(cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.es == nil {
		return fmt.Errorf("elasticsearch is unreachable")
	}

	n, err := a.products.Reindex(cmd.Context())
	if err != nil {
		return err
	}
	appLogger.Info("Products reindexed", zap.Int("count", n), zap.String("index", cfg.Elastic.Index))
	return nil
}
