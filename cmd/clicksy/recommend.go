package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/observability"
	"github.com/clicksy/clicksy-api/internal/ranking"
	"github.com/clicksy/clicksy-api/internal/schemas"
	"github.com/clicksy/clicksy-api/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank a candidate pool against a requester profile",
	Long:  "Scores every candidate profile against the requester and prints the top matches, highest score first, as JSON.",
	RunE:  runRecommend,
}

var (
	recommendRequester  string
	recommendCandidates string
	recommendOutput     string
	recommendCompact    bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendRequester, "requester", "r", "", "Path to the requester Profile JSON file (required)")
	recommendCmd.Flags().StringVarP(&recommendCandidates, "candidates", "c", "", "Path to a JSON array of candidate Profiles (required)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Write the matches to this file instead of stdout")
	recommendCmd.Flags().BoolVar(&recommendCompact, "compact", false, "Only keep the compact widget's top 3")

	if err := recommendCmd.MarkFlagRequired("requester"); err != nil {
		panic(fmt.Sprintf("failed to mark requester flag as required: %v", err))
	}
	if err := recommendCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	var requester types.Profile
	if err := loadValidated(recommendRequester, schemas.ProfileSchema, &requester); err != nil {
		return fmt.Errorf("requester: %w", err)
	}

	var candidates []types.Profile
	if err := loadValidated(recommendCandidates, schemas.ProfilesSchema, &candidates); err != nil {
		return fmt.Errorf("candidates: %w", err)
	}
	if err := requireIDs(&requester, candidates); err != nil {
		return err
	}

	matches, err := ranking.Recommend(&requester, candidates)
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}
	if recommendCompact {
		matches = ranking.Limit(matches, ranking.CompactN)
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMatches(&requester, matches)
	}

	if err := writeJSON(cmd, recommendOutput, matches); err != nil {
		return err
	}
	if recommendOutput != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Ranked %d of %d candidates to %s\n", len(matches), len(candidates), recommendOutput)
	}
	return nil
}

// requireIDs rejects profiles whose id is missing or the nil UUID. Ranking
// matches identity by ID, so a nil requester would hide every nil candidate.
func requireIDs(requester *types.Profile, candidates []types.Profile) error {
	if requester.ID == uuid.Nil {
		return fmt.Errorf("requester: profile has no id")
	}
	for i := range candidates {
		if candidates[i].ID == uuid.Nil {
			return fmt.Errorf("candidates: profile at index %d has no id", i)
		}
	}
	return nil
}

// loadValidated reads path, checks it against the schema when the schema can be
// located, and decodes it into v. Callers must check decoded fields the schema
// would have enforced.
func loadValidated(path, schema string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if schemaPath := schemas.ResolveSchemaPath(schema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	} else {
		logging.Warn().Str("schema", schema).Str("file", path).Msg("Schema not found, skipping validation")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v indented to path, or to stdout when path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
