// README: prompt command; prints the exact prompt text without calling a provider.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wayfarer/internal/modules/planner"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt a trip would send, without any network call",
	Long: `Build and print the exact prompt text for one generation section. Useful
for inspecting what the provider would receive; no API key is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := tripRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		section, _ := cmd.Flags().GetString("section")
		text, err := planner.Preview(req, section)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	addTripFlags(promptCmd)
	promptCmd.Flags().StringP("section", "s", "itinerary",
		"Section to preview: itinerary, insights, budget, or packing")
}
