package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexusriot/anacreon/internal/api"
	"github.com/nexusriot/anacreon/internal/probe"
)

var (
	expBusiness    int
	expAmount      float64
	expCategory    string
	expDescription string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Work with expenditures on the backend",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expenditure",
	RunE: func(cmd *cobra.Command, args []string) error {
		if expAmount <= 0 {
			return errors.New("--amount must be positive")
		}
		if expBusiness <= 0 {
			return errors.New("--business is required")
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
		defer cancel()

		exp, err := newClient(cfg, log).CreateExpenditure(ctx, api.NewExpenditure{
			Business:    expBusiness,
			Amount:      api.Decimal(expAmount),
			Category:    expCategory,
			Description: expDescription,
		})
		if err != nil {
			return fmt.Errorf("creating expenditure: %w", err)
		}
		log.Debug("expenditure created", zap.Int("id", exp.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "%s expenditure #%d: %s %s\n",
			color.GreenString("✓"), exp.ID, probe.HumanMoney(float64(exp.Amount)), exp.Category)
		return nil
	},
}

func init() {
	f := expenseAddCmd.Flags()
	f.IntVar(&expBusiness, "business", 0, "business id")
	f.Float64Var(&expAmount, "amount", 0, "amount spent")
	f.StringVar(&expCategory, "category", "", "expenditure category name")
	f.StringVar(&expDescription, "description", "", "what it was for")
	expenseCmd.AddCommand(expenseAddCmd)
}
