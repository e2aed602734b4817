package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new member",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		address, _ := cmd.Flags().GetString("address")
		mobile, _ := cmd.Flags().GetString("mobile")

		password, err := readPassword("Choose a password (empty for none): ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		mem, err := mgr.RegisterMember(name, address, mobile, password)
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s with member ID %d\n", mem.Name, mem.ID)
		return nil
	},
}

var finesCmd = &cobra.Command{
	Use:   "fines",
	Short: "Show a member's outstanding fines and borrowed items",
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, _ := cmd.Flags().GetInt64("member")
		mem, err := mgr.GetMember(memberID)
		if err != nil {
			return err
		}
		fmt.Printf("%s (ID %d)\n", mem.Name, mem.ID)
		fmt.Printf("Outstanding fines: Rs %d\n", mem.FineDue)
		if len(mem.BorrowedItems) == 0 {
			fmt.Println("No borrowed items")
			return nil
		}
		fmt.Println("Borrowed items:")
		for _, itemID := range mem.BorrowedItems {
			it, err := mgr.GetItem(itemID)
			if err != nil {
				continue
			}
			fmt.Printf("  %-5d %-40s due %s (fine so far Rs %d)\n",
				it.ID, it.Title, it.DueDate.Format("2006-01-02"), mgr.CalculateFine(it.ID))
		}
		return nil
	},
}

var payFinesCmd = &cobra.Command{
	Use:   "pay-fines",
	Short: "Clear a member's outstanding fines",
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, _ := cmd.Flags().GetInt64("member")
		if err := authenticateMember(memberID); err != nil {
			return err
		}
		amt, err := mgr.ClearFines(memberID)
		if err != nil {
			return err
		}
		fmt.Printf("Paid Rs %d\n", amt)
		return nil
	},
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe a member to a periodical",
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, _ := cmd.Flags().GetInt64("member")
		name, _ := cmd.Flags().GetString("name")
		frequency, _ := cmd.Flags().GetString("frequency")
		if err := authenticateMember(memberID); err != nil {
			return err
		}
		if err := mgr.Subscribe(memberID, name, frequency); err != nil {
			return err
		}
		fmt.Printf("Subscribed to %s (%s)\n", name, frequency)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a member's activity ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, _ := cmd.Flags().GetInt64("member")
		mem, err := mgr.GetMember(memberID)
		if err != nil {
			return err
		}
		if len(mem.History) == 0 {
			fmt.Println("No history")
			return nil
		}
		fmt.Printf("%-20s %-18s %-35s %-12s %s\n", "Date", "Action", "Item", "Category", "Details")
		for _, e := range mem.History {
			fmt.Printf("%-20s %-18s %-35s %-12s %s\n",
				e.Date.Format("2006-01-02 15:04"), e.Action, e.Item, e.Category, e.Details)
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "member name")
	registerCmd.Flags().String("address", "", "postal address")
	registerCmd.Flags().String("mobile", "", "mobile number")
	registerCmd.MarkFlagRequired("name")

	finesCmd.Flags().Int64("member", 0, "member ID")
	finesCmd.MarkFlagRequired("member")

	payFinesCmd.Flags().Int64("member", 0, "member ID")
	payFinesCmd.MarkFlagRequired("member")

	subscribeCmd.Flags().Int64("member", 0, "member ID")
	subscribeCmd.Flags().String("name", "", "subscription name")
	subscribeCmd.Flags().String("frequency", "Monthly", "Daily, Weekly or Monthly")
	subscribeCmd.MarkFlagRequired("member")
	subscribeCmd.MarkFlagRequired("name")

	historyCmd.Flags().Int64("member", 0, "member ID")
	historyCmd.MarkFlagRequired("member")

	rootCmd.AddCommand(registerCmd, finesCmd, payFinesCmd, subscribeCmd, historyCmd)
}
