package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bakery-production/internal/apperr"
	"bakery-production/internal/service/production"
)

func newCapacityCommand() *cobra.Command {
	var (
		orderVolume int
		batchSize   float64
	)

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Compute batch count and quantity for an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := production.CalculateCapacity(orderVolume, batchSize)
			if err != nil {
				return fmt.Errorf("capacity: %s", apperr.Message(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "batch_number: %d\nquantity_to_produce: %g\n", c.BatchNumber, c.QuantityToProduce)
			return nil
		},
	}

	cmd.Flags().IntVar(&orderVolume, "order-volume", 0, "units ordered")
	cmd.Flags().Float64Var(&batchSize, "batch-size", 0, "units produced by one batch")
	_ = cmd.MarkFlagRequired("order-volume")
	_ = cmd.MarkFlagRequired("batch-size")

	return cmd
}
