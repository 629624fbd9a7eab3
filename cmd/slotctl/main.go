package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/scheduler"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

const nowLayout = "2006-01-02T15:04:05"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "slotctl",
		Short:        "Offline slot generation for doctor queues",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(generateCmd())
	return rootCmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the slot table for a consultation start and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			dateStr, _ := cmd.Flags().GetString("date")
			interval, _ := cmd.Flags().GetInt("interval")
			maxSlots, _ := cmd.Flags().GetInt("max")
			bookedRaw, _ := cmd.Flags().GetStringSlice("booked")
			extra, _ := cmd.Flags().GetInt("extra")
			nowStr, _ := cmd.Flags().GetString("now")

			date, err := time.Parse(domain.DateFormat, dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateStr, err)
			}

			if interval <= 0 {
				return fmt.Errorf("invalid --interval %d: must be positive", interval)
			}

			now := time.Now()
			if nowStr != "" {
				now, err = time.Parse(nowLayout, nowStr)
				if err != nil {
					return fmt.Errorf("invalid --now %q, expected %s: %w", nowStr, nowLayout, err)
				}
			}

			booked, err := parseBooked(bookedRaw)
			if err != nil {
				return err
			}

			req := scheduler.Request{
				Date:            date,
				Booked:          booked,
				IntervalMinutes: interval,
				MaxSlots:        maxSlots,
				Now:             now,
			}
			if start != "" {
				consultationStart, err := types.NewTimeStringFromString(start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				req.ConsultationStart = &consultationStart
			}

			slots := scheduler.GenerateSlots(req)
			if extra > 0 {
				slots, err = scheduler.Expand(slots, booked, interval, extra)
				if err != nil {
					return fmt.Errorf("cannot add %d extra slots: %w", extra, err)
				}
			}

			return printSlots(cmd, slots)
		},
	}

	cmd.Flags().String("start", "", "Consultation start time HH:MM or HH:MM:SS")
	cmd.Flags().String("date", "", "Target date YYYY-MM-DD")
	cmd.Flags().Int("interval", domain.DefaultBookingIntervalMinutes, "Slot length in minutes")
	cmd.Flags().Int("max", domain.DefaultMaxSlots, "Maximum number of slots")
	cmd.Flags().StringSlice("booked", nil, "Booked appointments as HH:MM[:SS][/token], repeatable")
	cmd.Flags().Int("extra", 0, "Number of slots to append once the queue is exhausted")
	cmd.Flags().String("now", "", "Override current time, "+nowLayout)
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// parseBooked разбирает значения вида "09:10:00/2" или "09:10"
func parseBooked(values []string) ([]domain.BookedAppointment, error) {
	booked := make([]domain.BookedAppointment, 0, len(values))
	for _, value := range values {
		timePart, tokenPart, hasToken := strings.Cut(value, "/")

		appointment := domain.BookedAppointment{}
		if timePart != "" {
			t, err := types.NewTimeStringFromString(timePart)
			if err != nil {
				return nil, fmt.Errorf("invalid --booked %q: %w", value, err)
			}
			appointment.Time = t
		}
		if hasToken {
			token, err := strconv.Atoi(tokenPart)
			if err != nil || token <= 0 {
				return nil, fmt.Errorf("invalid --booked %q: token must be a positive number", value)
			}
			appointment.Token = token
		}
		booked = append(booked, appointment)
	}
	return booked, nil
}

func printSlots(cmd *cobra.Command, slots []domain.Slot) error {
	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, "no slots: consultation time is not set")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tSTART\tEND\tSTATUS")
	for _, slot := range slots {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", slot.Token, slot.StartTime, slot.EndTime, slotStatus(slot))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "needs additional slot: %t\n", scheduler.NeedsAdditionalSlot(slots))
	return nil
}

func slotStatus(slot domain.Slot) string {
	switch {
	case slot.IsBooked:
		return "booked"
	case slot.IsExpired:
		return "expired"
	default:
		return "free"
	}
}
