package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spiegelmatch/internal/catalog"
	"spiegelmatch/internal/config"
	"spiegelmatch/internal/db"
	"spiegelmatch/internal/domain"
	"spiegelmatch/internal/service"
	"spiegelmatch/internal/taxonomy"
)

// generateFile es el formato de entrada de "matchctl generate".
type generateFile struct {
	UserID      string                      `json:"userId"`
	Username    string                      `json:"username"`
	Tags        []domain.TagSelection       `json:"tags"`
	Lifestyle   domain.LifestyleData        `json:"lifestyle"`
	Adjustments *domain.AdjustmentOverrides `json:"adjustments,omitempty"`
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Generate character profiles and score matches offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions to stderr")

	logger := func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}

	root.AddCommand(
		newArchetypesCmd(),
		newGenerateCmd(logger),
		newScoreCmd(logger),
		newTokenCmd(),
		newMigrateCmd(logger),
	)
	return root
}

func newArchetypesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "archetypes",
		Short: "List the archetype catalog in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), cat.Archetypes)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tE\tO\tC\tA\tN")
			for _, a := range cat.Archetypes {
				p := a.Pattern
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", a.Key, a.Name, p.Extraversion, p.Openness, p.Conscientiousness, p.Agreeableness, p.Neuroticism)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newGenerateCmd(logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <input.json|->",
		Short: "Generate a character profile from a tag selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in generateFile
			if err := readJSON(cmd.InOrStdin(), args[0], &in); err != nil {
				return err
			}
			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			tax, err := taxonomy.Default()
			if err != nil {
				return err
			}
			profile, err := service.NewCharacterGenerator(cat, tax).Generate(service.GenerateInput{
				UserID:      in.UserID,
				Username:    in.Username,
				Tags:        in.Tags,
				Lifestyle:   in.Lifestyle,
				Adjustments: in.Adjustments,
			})
			if err != nil {
				return err
			}
			logger().Info("profile generated",
				zap.String("archetype", profile.Archetype.Key),
				zap.Int("tags", profile.TagsSummary.TotalTags),
			)
			return writeJSON(cmd.OutOrStdout(), profile)
		},
	}
}

func newScoreCmd(logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "score <character1.json> <character2.json>",
		Short: "Score two generated profiles against each other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readProfile(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			b, err := readProfile(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			result, err := service.NewMatchingEngine().Score(a, b)
			if err != nil {
				return err
			}
			logger().Info("match scored",
				zap.Int("overall", result.Scores.Overall),
				zap.String("level", result.CompatibilityLevel),
			)
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		userID   string
		username string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.NewJWTService(os.Getenv("JWT_SECRET"), os.Getenv("JWT_ISSUER"), ttl)
			if !svc.Enabled() {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := svc.IssueAccessToken(userID, username)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the token")
	cmd.Flags().StringVar(&username, "username", "", "optional display name")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newMigrateCmd(logger func() *zap.Logger) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the pgvector extension and tables in DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), db.Schema())
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			pool, err := db.NewPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := db.EnsureSchema(cmd.Context(), pool); err != nil {
				return err
			}
			logger().Info("schema ready")
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the DDL instead of applying it")
	return cmd
}

// readProfile rechaza perfiles sin big5; decodificados tal cual tendrian
// todos los rasgos en cero.
func readProfile(stdin io.Reader, path string) (*domain.CharacterProfile, error) {
	var in struct {
		domain.CharacterProfile
		Big5 *domain.Big5Scores `json:"big5"`
	}
	if err := readJSON(stdin, path, &in); err != nil {
		return nil, err
	}
	if in.Big5 == nil {
		return nil, fmt.Errorf("%s: %w: big5 is required", path, service.ErrInvalidInput)
	}
	profile := in.CharacterProfile
	profile.Big5 = *in.Big5
	return &profile, nil
}

func readJSON(stdin io.Reader, path string, out any) error {
	var r io.Reader = stdin
	if strings.TrimSpace(path) != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
