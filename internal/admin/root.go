package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/dmitrijs2005/weekplanner/internal/server/config"
	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"github.com/dmitrijs2005/weekplanner/internal/server/services"
	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

// now is a test seam for the seed dates.
var now = time.Now

type app struct {
	cfg     *config.Config
	connect Connector
}

// NewRootCmd builds the planneradmin command tree. cfg supplies the defaults
// that --mongo-uri and --db override.
func NewRootCmd(cfg *config.Config, connect Connector) *cobra.Command {
	a := &app{cfg: cfg, connect: connect}

	root := &cobra.Command{
		Use:           "planneradmin",
		Short:         "Operator tool for the week planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection string")
	root.PersistentFlags().StringVar(&cfg.DatabaseName, "db", cfg.DatabaseName, "database name")

	root.AddCommand(a.newSeedCmd(), a.newClearCmd(), a.newStatsCmd())
	return root
}

// withBackend runs fn against a freshly opened backend.
func (a *app) withBackend(cmd *cobra.Command, fn func(ctx context.Context, b *Backend) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	b, err := a.connect(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close(context.Background()) }()

	return fn(ctx, b)
}

func lookupIdentity(ctx context.Context, b *Backend, email string) (models.Identity, error) {
	u, err := b.Users.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Identity{}, fmt.Errorf("no user registered as %s", services.NormalizeEmail(email))
		}
		return models.Identity{}, err
	}
	return models.Identity{UserID: u.ID, Name: u.Name}, nil
}

func (a *app) newSeedCmd() *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a user if needed and add sample tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.withBackend(cmd, func(ctx context.Context, b *Backend) error {
				u, err := b.Users.Lookup(ctx, email)
				switch {
				case errors.Is(err, common.ErrorNotFound):
					pw, perr := getPassword(out)
					if perr != nil {
						return perr
					}
					defer common.WipeByteArray(pw)

					u, err = b.Users.Register(ctx, name, email, string(pw))
					if err != nil {
						return err
					}
					ok(out, "registered "+u.Email)
				case err != nil:
					return err
				default:
					note(out, "user "+u.Email+" already exists")
				}

				id := models.Identity{UserID: u.ID, Name: u.Name}
				n, err := b.Tasks.Seed(ctx, id, services.SampleTasks(now()))
				if err != nil {
					return err
				}
				ok(out, fmt.Sprintf("added %d sample tasks", n))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name for a new account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) newClearCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Permanently delete every task of a user, trash included",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.withBackend(cmd, func(ctx context.Context, b *Backend) error {
				id, err := lookupIdentity(ctx, b, email)
				if err != nil {
					return err
				}
				n, err := b.Tasks.ClearAll(ctx, id)
				if err != nil {
					return err
				}
				ok(out, fmt.Sprintf("removed %d tasks", n))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) newStatsCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard counters of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.withBackend(cmd, func(ctx context.Context, b *Backend) error {
				id, err := lookupIdentity(ctx, b, email)
				if err != nil {
					return err
				}
				st, err := b.Tasks.Stats(ctx, id)
				if err != nil {
					return err
				}
				panel(out, id.Name, []string{
					fmt.Sprintf("total     %d", st.Total),
					fmt.Sprintf("upcoming  %d", st.Upcoming),
					fmt.Sprintf("today     %d", st.Today),
					fmt.Sprintf("overdue   %d", st.Overdue),
					fmt.Sprintf("tags      %d", st.Tags),
				})
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
