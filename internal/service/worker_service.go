package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DischargeWorker releases stays whose planned discharge date has passed
type DischargeWorker struct {
	stays    *HospitalizationService
	interval time.Duration
	logger   zerolog.Logger
}

func NewDischargeWorker(stays *HospitalizationService, interval time.Duration, logger zerolog.Logger) *DischargeWorker {
	return &DischargeWorker{
		stays:    stays,
		interval: interval,
		logger:   logger.With().Str("component", "discharge_worker").Logger(),
	}
}

// Start runs the sweep on every tick until ctx is cancelled
func (w *DischargeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("discharge worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("discharge worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep discharges every due stay and returns how many were released
func (w *DischargeWorker) Sweep(ctx context.Context) int {
	due, err := w.stays.DueDischarges(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to fetch due discharges")
		return 0
	}

	released := 0
	for _, stay := range due {
		// The stay may have been edited since it was listed
		ok, err := w.stays.DischargeIfDue(ctx, stay.ID)
		if err != nil {
			w.logger.Error().Err(err).Str("hospitalization_id", stay.ID).Msg("failed to discharge")
			continue
		}
		if ok {
			released++
			w.logger.Info().
				Str("hospitalization_id", stay.ID).
				Str("room_id", stay.RoomID).
				Msg("stay discharged, room released")
		}
	}
	return released
}
