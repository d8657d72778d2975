package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/ideascore-backend/internal/app"
	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
)

var seedUser string

var seedCmd = &cobra.Command{
	Use:   "seed-criteria",
	Short: "Give a user the default criteria set",
	Long: `Copies the eight default criteria (market size, feasibility, ...) into the
user's own criteria with orders 1 through 8. Running it twice gives the user
two copies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(seedUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		a, err := loadApp(cmd.Context(), app.Options{Migrate: true})
		if err != nil {
			return err
		}
		defer a.Close()

		// The operator acts as the target user.
		ctx := ctxutil.WithPrincipal(cmd.Context(), userID)
		rows, err := a.Services.Criteria.SeedDefaults(dbctx.Context{Ctx: ctx}, userID)
		if err != nil {
			return err
		}
		for _, c := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tweight=%d\n", c.Order, c.Name, c.Weight)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "", "User id to seed (required)")
	_ = seedCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(seedCmd)
}
