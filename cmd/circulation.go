package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "Borrow an item for a number of days",
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, _ := cmd.Flags().GetInt64("member")
		itemID, _ := cmd.Flags().GetInt64("item")
		days, _ := cmd.Flags().GetInt("days")

		if err := authenticateMember(memberID); err != nil {
			return err
		}
		due, err := mgr.Borrow(memberID, itemID, days)
		if err != nil {
			return err
		}
		fmt.Printf("Due %s\n", due.Format("2006-01-02"))
		return nil
	},
}

var returnCmd = &cobra.Command{
	Use:   "return",
	Short: "Return a borrowed item",
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, _ := cmd.Flags().GetInt64("member")
		itemID, _ := cmd.Flags().GetInt64("item")
		payNow, _ := cmd.Flags().GetBool("pay-now")

		if err := authenticateMember(memberID); err != nil {
			return err
		}
		fine, err := mgr.Return(memberID, itemID, payNow)
		if err != nil {
			return err
		}
		switch {
		case fine == 0:
			fmt.Println("Returned, no fine")
		case payNow:
			fmt.Printf("Returned, fine Rs %d paid at the counter\n", fine)
		default:
			fmt.Printf("Returned, fine Rs %d added to your balance\n", fine)
		}
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Reclaim expired audiobook rentals",
	RunE: func(cmd *cobra.Command, args []string) error {
		n := mgr.SweepExpiredRentals()
		fmt.Printf("Reclaimed %d expired rentals\n", n)
		return nil
	},
}

func init() {
	borrowCmd.Flags().Int64("member", 0, "member ID")
	borrowCmd.Flags().Int64("item", 0, "item ID")
	borrowCmd.Flags().Int("days", 1, "borrow duration in days (1-7)")
	borrowCmd.MarkFlagRequired("member")
	borrowCmd.MarkFlagRequired("item")

	returnCmd.Flags().Int64("member", 0, "member ID")
	returnCmd.Flags().Int64("item", 0, "item ID")
	returnCmd.Flags().Bool("pay-now", false, "pay any fine at the counter instead of adding it to the balance")
	returnCmd.MarkFlagRequired("member")
	returnCmd.MarkFlagRequired("item")

	rootCmd.AddCommand(borrowCmd, returnCmd, sweepCmd)
}
