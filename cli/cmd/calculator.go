// ABOUTME: Calculator backends for CLI commands
// ABOUTME: Runs the pricing calculators in-process or through the backend API

package cmd

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/Bazzook4/hotel-setup-tool/backend/export"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
	"github.com/Bazzook4/hotel-setup-tool/cli/internal/client"
)

// calculator runs the occupancy and inventory calculations.
type calculator interface {
	Occupancy(ctx context.Context, input models.OccupancyInput) (models.OccupancyResult, error)
	Export(ctx context.Context, input models.OccupancyInput, format export.Format) ([]byte, error)
	Inventory(ctx context.Context, input models.InventoryInput) (models.InventoryResult, error)
}

// newCalculator returns the in-process calculator when baseURL is empty.
func newCalculator(baseURL string) calculator {
	if baseURL == "" {
		return &localCalculator{
			occupancy: services.NewOccupancyCalculator(),
			inventory: services.NewInventoryCalculator(),
			now:       time.Now,
		}
	}
	return &remoteCalculator{client: client.New(baseURL)}
}

type localCalculator struct {
	occupancy *services.OccupancyCalculator
	inventory *services.InventoryCalculator
	now       func() time.Time
}

func (l *localCalculator) Occupancy(_ context.Context, input models.OccupancyInput) (models.OccupancyResult, error) {
	return l.occupancy.Calculate(input)
}

func (l *localCalculator) Export(ctx context.Context, input models.OccupancyInput, format export.Format) ([]byte, error) {
	result, err := l.Occupancy(ctx, input)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, format, result, l.now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *localCalculator) Inventory(_ context.Context, input models.InventoryInput) (models.InventoryResult, error) {
	return l.inventory.Calculate(input)
}

type remoteCalculator struct {
	client *client.Client
}

func (r *remoteCalculator) Occupancy(ctx context.Context, input models.OccupancyInput) (models.OccupancyResult, error) {
	resp, err := r.client.CalculateOccupancy(ctx, input)
	if err != nil {
		return models.OccupancyResult{}, err
	}
	return resp.OccupancyResult, nil
}

func (r *remoteCalculator) Export(ctx context.Context, input models.OccupancyInput, format export.Format) ([]byte, error) {
	return r.client.ExportOccupancy(ctx, input, string(format))
}

func (r *remoteCalculator) Inventory(ctx context.Context, input models.InventoryInput) (models.InventoryResult, error) {
	resp, err := r.client.CalculateInventory(ctx, input)
	if err != nil {
		return models.InventoryResult{}, err
	}
	return resp.InventoryResult, nil
}

// isInvalidInput reports whether err is a validation failure from either mode.
func isInvalidInput(err error) bool {
	var invalid *services.InvalidInputError
	return errors.As(err, &invalid) || client.IsValidation(err)
}

// exitCode maps a calculation error to the CLI exit status.
func exitCode(err error) int {
	if isInvalidInput(err) {
		return 1
	}
	return 2
}
