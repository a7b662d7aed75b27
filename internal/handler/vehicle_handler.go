package handler

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/model"
	"vehicle-service-scheduler/internal/rpc"
	"vehicle-service-scheduler/internal/store"
)

func (h *Handler) ListVehicles(ctx context.Context, _ *rpc.Empty) (*rpc.VehicleList, error) {
	return toVehicles(h.Garage.List()), nil
}

func (h *Handler) AddVehicle(ctx context.Context, req *rpc.AddVehicleRequest) (*rpc.VehicleList, error) {
	v, err := h.Garage.Add(store.VehicleInput{Name: req.Name, Year: req.Year, Plate: req.Plate})
	if err != nil {
		return nil, h.toStatus("add vehicle", err)
	}
	h.Logger.Info("vehicle added", "id", v.ID, "plate", v.Plate)
	return toVehicles(h.Garage.List()), nil
}

// SelectVehicle makes id the only selected vehicle.
func (h *Handler) SelectVehicle(ctx context.Context, req *rpc.IDRequest) (*rpc.VehicleList, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	h.Garage.SelectOnly(req.ID)
	if _, ok := h.Garage.Selected(); !ok {
		return nil, h.toStatus("select vehicle", fmt.Errorf("%w: vehicle %s", model.ErrNotFound, req.ID))
	}
	return toVehicles(h.Garage.List()), nil
}

func (h *Handler) DeleteVehicle(ctx context.Context, req *rpc.IDRequest) (*rpc.VehicleList, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if !h.Garage.Delete(req.ID) {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return toVehicles(h.Garage.List()), nil
}
