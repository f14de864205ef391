// README: plan command; generates an itinerary or a full plan via the provider.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	"wayfarer/internal/modules/planner"
	"wayfarer/internal/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a travel itinerary",
	Long: `Generate a day-by-day itinerary for a trip. By default the provider's raw
text is printed unchanged; with --full, all plan sections (itinerary,
insights, budget, packing) are generated and printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := tripRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		timeout, _ := cmd.Flags().GetInt("timeout")

		aiCfg := config.LoadAI()
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		defer cancel()

		provider, err := ai.New(ctx, aiCfg.Provider, aiCfg.APIKey, aiCfg.Model)
		if err != nil {
			return err
		}
		defer provider.Close()

		svc := planner.NewService(provider, aiCfg,
			config.PlannerConfig{CallTimeoutSeconds: timeout}, planner.Options{})

		if full, _ := cmd.Flags().GetBool("full"); full {
			plan, err := svc.GeneratePlan(ctx, "", req)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		text, err := svc.Itinerary(ctx, req)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addTripFlags(planCmd)
	planCmd.Flags().Bool("full", false, "Generate all plan sections and print JSON")
	planCmd.Flags().Int("timeout", 120, "Overall timeout in seconds")
}

// addTripFlags registers the trip parameters shared by plan and prompt.
func addTripFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("destination", "d", "", "Destination, e.g. \"Lisbon, Portugal\" (required)")
	cmd.Flags().StringP("origin", "o", "", "Departure place (optional)")
	cmd.Flags().String("start", "", "Start date, YYYY-MM-DD (required)")
	cmd.Flags().String("end", "", "End date, YYYY-MM-DD (required)")
	cmd.Flags().IntP("travelers", "n", 0, "Number of travelers (default 2)")
	cmd.Flags().Float64("budget", 0, "Total trip budget in major units, e.g. 1200.50")
	cmd.Flags().String("currency", "USD", "Budget currency code")
	cmd.Flags().String("budget-level", "", "Budget level: budget, mid-range, or luxury")
	cmd.Flags().StringSliceP("preferences", "p", nil, "Preference tags, e.g. Food,History")
	cmd.MarkFlagRequired("destination")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
}

// tripRequestFromFlags builds the request; validation happens in the service.
func tripRequestFromFlags(cmd *cobra.Command) (planner.TripRequest, error) {
	var req planner.TripRequest
	req.Destination, _ = cmd.Flags().GetString("destination")
	req.Origin, _ = cmd.Flags().GetString("origin")
	req.StartDate, _ = cmd.Flags().GetString("start")
	req.EndDate, _ = cmd.Flags().GetString("end")
	req.Travelers, _ = cmd.Flags().GetInt("travelers")
	req.BudgetLevel, _ = cmd.Flags().GetString("budget-level")
	req.Preferences, _ = cmd.Flags().GetStringSlice("preferences")
	if cmd.Flags().Changed("budget") {
		amount, _ := cmd.Flags().GetFloat64("budget")
		currency, _ := cmd.Flags().GetString("currency")
		req.Budget = &types.Money{Amount: int64(math.Round(amount * 100)), Currency: currency}
	}
	return req, nil
}
